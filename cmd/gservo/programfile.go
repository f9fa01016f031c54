package main

import (
	"errors"
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"github.com/mastercactapus/gservo/program"
)

// programFile is the YAML document format for motor programs kept in
// the data directory or PUT directly to the API.
type programFile struct {
	MoveType string            `yaml:"moveType"`
	Loop     float64           `yaml:"loop"`
	Steps    []programFileStep `yaml:"steps"`
}

type programFileStep struct {
	Channel uint8   `yaml:"channel"`
	Address uint8   `yaml:"address"`
	Goal    float64 `yaml:"goal"`
	Time    float64 `yaml:"time"`

	// velocity mode
	Velocity     float64 `yaml:"velocity"`
	Acceleration float64 `yaml:"acceleration"`

	// current mode
	Current float64 `yaml:"current"`
}

func parseProgram(data []byte, capacity int) (*program.Program, error) {
	var f programFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("program has no steps")
	}

	var mt program.MoveType
	switch f.MoveType {
	case "", "velocity":
		mt = program.PositionVelocity
	case "current":
		mt = program.PositionCurrent
	default:
		return nil, fmt.Errorf("unknown moveType %q", f.MoveType)
	}

	p := program.New(capacity)
	if err := p.SetMoveType(mt); err != nil {
		return nil, err
	}
	p.SetLoopDuration(f.Loop)

	for i, step := range f.Steps {
		var params program.Params
		if mt == program.PositionCurrent {
			params = program.CurrentParams{Current: step.Current}
		} else {
			params = program.VelocityParams{
				Velocity:     step.Velocity,
				Acceleration: step.Acceleration,
			}
		}
		err := p.AddStep(step.Channel, step.Address, step.Goal, params, step.Time)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return p, nil
}
