package servo

import "fmt"

// HandshakeError indicates the controller did not answer the opening
// handshake with the expected acknowledgment byte.
type HandshakeError struct {
	Reply byte
}

func (err HandshakeError) Error() string {
	return fmt.Sprintf("handshake failed: controller replied 0x%02X", err.Reply)
}

// ProtocolTimeoutError indicates an expected reply never arrived.
type ProtocolTimeoutError struct {
	Op string
}

func (err ProtocolTimeoutError) Error() string {
	return "no reply from controller during " + err.Op
}

// DeviceNackError indicates the controller explicitly rejected a command.
type DeviceNackError struct {
	Channel, Address uint8
	Reply            byte
}

func (err DeviceNackError) Error() string {
	return fmt.Sprintf("controller rejected command for channel %d address %d (reply 0x%02X)", err.Channel, err.Address, err.Reply)
}

// ModeSetError indicates a freshly discovered motor did not acknowledge
// the default-mode command.
type ModeSetError struct {
	Channel, Address uint8
	Reply            byte
}

func (err ModeSetError) Error() string {
	return fmt.Sprintf("set default mode failed for channel %d address %d (reply 0x%02X)", err.Channel, err.Address, err.Reply)
}

// UnregisteredMotorError indicates an operation targeted a (channel,
// address) pair that no discovery scan has reported.
type UnregisteredMotorError struct {
	Channel, Address uint8
}

func (err UnregisteredMotorError) Error() string {
	return fmt.Sprintf("no motor registered at channel %d address %d", err.Channel, err.Address)
}

// MotorInUseError indicates an operation that requires an unbound motor
// targeted one with a live Motor handle.
type MotorInUseError struct {
	Channel, Address uint8
}

func (err MotorInUseError) Error() string {
	return fmt.Sprintf("motor at channel %d address %d is bound and in use", err.Channel, err.Address)
}

// UploadError indicates the controller refused a program upload.
type UploadError struct {
	Slot  int
	Reply byte
}

func (err UploadError) Error() string {
	return fmt.Sprintf("upload to program slot %d failed (reply 0x%02X)", err.Slot, err.Reply)
}

// ProgramNotLoadedError indicates a run was requested for a slot that has
// not been successfully loaded this session.
type ProgramNotLoadedError struct {
	Slot int
}

func (err ProgramNotLoadedError) Error() string {
	return fmt.Sprintf("program slot %d is not loaded", err.Slot)
}

// SlotRangeError indicates a slot index outside the controller's
// advertised program count.
type SlotRangeError struct {
	Slot, Max int
}

func (err SlotRangeError) Error() string {
	return fmt.Sprintf("program slot %d out of range: controller has %d slots", err.Slot, err.Max)
}
