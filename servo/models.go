package servo

// UnknownModel is reported for model codes the catalog does not list.
// Discovery still registers the motor; the name is display-only.
const UnknownModel = "unknown model"

// modelNames maps the controller's model codes to marketing names.
// Codes encode series*1000 + rated torque.
var modelNames = map[uint32]string{
	1003: "S-03",
	1006: "S-06",
	1009: "S-09",
	1012: "S-12",
	1015: "S-15",
	1020: "S-20",

	2010: "M-10",
	2017: "M-17",
	2025: "M-25",
	2035: "M-35",
	2045: "M-45",
	2060: "M-60",

	3040: "H-40",
	3060: "H-60",
	3085: "H-85",
	3120: "H-120",

	4008: "G-08",
	4016: "G-16",
	4025: "G-25",
}

// ModelName resolves a model code, falling back to UnknownModel.
func ModelName(code uint32) string {
	if name, ok := modelNames[code]; ok {
		return name
	}
	return UnknownModel
}
