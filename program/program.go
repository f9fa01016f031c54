// Package program models a timed motor program built on the host and
// uploaded to a controller slot as a single binary payload.
package program

import "fmt"

// MoveType selects how each step drives its motor.
type MoveType int

const (
	// PositionVelocity steps carry a max velocity and acceleration.
	PositionVelocity MoveType = 0
	// PositionCurrent steps carry a max current (torque limit).
	PositionCurrent MoveType = 1
)

// Params holds the per-step fields whose meaning depends on the
// program's move type. Exactly one variant exists per move type.
type Params interface {
	moveType() MoveType
}

// VelocityParams limits a PositionVelocity step.
type VelocityParams struct {
	Velocity     float64
	Acceleration float64
}

func (VelocityParams) moveType() MoveType { return PositionVelocity }

// CurrentParams limits a PositionCurrent step.
type CurrentParams struct {
	Current float64
}

func (CurrentParams) moveType() MoveType { return PositionCurrent }

// InvalidMoveTypeError indicates a move type outside {PositionVelocity,
// PositionCurrent}, or step params that don't match the program's type.
type InvalidMoveTypeError struct {
	Type MoveType
}

func (err InvalidMoveTypeError) Error() string {
	return fmt.Sprintf("invalid move type %d", err.Type)
}

// AlreadyStartedError indicates an attempt to change the move type after
// steps were added. The byte layout of every later field depends on the
// move type, so it is immutable once the first step exists.
type AlreadyStartedError struct {
	Steps int
}

func (err AlreadyStartedError) Error() string {
	return fmt.Sprintf("move type is fixed: program already has %d steps", err.Steps)
}

// FullError indicates AddStep was called on a program at capacity.
type FullError struct {
	Capacity int
}

func (err FullError) Error() string {
	return fmt.Sprintf("program full: capacity is %d steps", err.Capacity)
}

// Program is a fixed-capacity sequence of steps. All per-step fields are
// parallel slices indexed 0..n-1; entries past n are unused. The zero
// move type is PositionVelocity.
type Program struct {
	mt   MoveType
	loop float64
	n    int

	channel []uint8
	address []uint8
	goal    []float64
	velCur  []float64
	accel   []float64
	seconds []float64
}

// New returns an empty program that can hold up to capacity steps.
// Callers normally size it to the controller's max-steps bound.
func New(capacity int) *Program {
	return &Program{
		channel: make([]uint8, capacity),
		address: make([]uint8, capacity),
		goal:    make([]float64, capacity),
		velCur:  make([]float64, capacity),
		accel:   make([]float64, capacity),
		seconds: make([]float64, capacity),
	}
}

// Len returns the number of steps added so far.
func (p *Program) Len() int { return p.n }

// Cap returns the step capacity.
func (p *Program) Cap() int { return len(p.channel) }

// MoveType returns the program's move type.
func (p *Program) MoveType() MoveType { return p.mt }

// SetMoveType sets the move type. It fails once any step has been added.
func (p *Program) SetMoveType(mt MoveType) error {
	if mt != PositionVelocity && mt != PositionCurrent {
		return InvalidMoveTypeError{Type: mt}
	}
	if p.n > 0 {
		return AlreadyStartedError{Steps: p.n}
	}
	p.mt = mt
	return nil
}

// SetLoopDuration sets how long the program loops once started, in
// seconds. Zero means run once.
func (p *Program) SetLoopDuration(seconds float64) {
	p.loop = seconds
}

// LoopDuration returns the loop duration in seconds.
func (p *Program) LoopDuration() float64 { return p.loop }

// AddStep appends a step targeting (channel, address) with a goal position
// in degrees, executing at seconds from program start. The params variant
// must match the program's move type.
func (p *Program) AddStep(channel, address uint8, goalDeg float64, params Params, seconds float64) error {
	if params.moveType() != p.mt {
		return InvalidMoveTypeError{Type: params.moveType()}
	}
	if p.n == p.Cap() {
		return FullError{Capacity: p.Cap()}
	}

	i := p.n
	p.channel[i] = channel
	p.address[i] = address
	p.goal[i] = goalDeg
	p.seconds[i] = seconds
	switch v := params.(type) {
	case VelocityParams:
		p.velCur[i] = v.Velocity
		p.accel[i] = v.Acceleration
	case CurrentParams:
		p.velCur[i] = v.Current
		p.accel[i] = 0
	}
	p.n++
	return nil
}
