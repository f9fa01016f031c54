package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/gservo/program"
)

func TestParseProgram(t *testing.T) {
	p, err := parseProgram([]byte(`
moveType: velocity
loop: 2.5
steps:
  - {channel: 1, address: 1, goal: 90, time: 0.5, velocity: 60, acceleration: 10}
  - {channel: 1, address: 2, goal: -45, time: 1, velocity: 30, acceleration: 5}
`), 16)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, program.PositionVelocity, p.MoveType())
	assert.Equal(t, 2.5, p.LoopDuration())
}

func TestParseProgram_Current(t *testing.T) {
	p, err := parseProgram([]byte(`
moveType: current
steps:
  - {channel: 2, address: 3, goal: 10, time: 0, current: 0.8}
`), 16)
	require.NoError(t, err)
	assert.Equal(t, program.PositionCurrent, p.MoveType())
}

func TestParseProgram_Invalid(t *testing.T) {
	_, err := parseProgram([]byte("moveType: warp\nsteps: [{channel: 1}]"), 16)
	assert.EqualError(t, err, `unknown moveType "warp"`)

	_, err = parseProgram([]byte("moveType: velocity"), 16)
	assert.EqualError(t, err, "program has no steps")

	// more steps than the controller can hold
	_, err = parseProgram([]byte(`
steps:
  - {channel: 1, address: 1, goal: 1, time: 0}
  - {channel: 1, address: 1, goal: 2, time: 1}
`), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "program full")
}
