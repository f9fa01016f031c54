package program

import (
	"math"
	"sort"

	"github.com/mastercactapus/gservo/wire"
)

// Ticks converts seconds to the controller's native time unit of
// 100 microseconds.
func Ticks(seconds float64) uint32 {
	return uint32(math.Round(seconds * 10000))
}

// Marshal serializes the program for upload to the given slot. Steps are
// emitted in non-decreasing tick order; when the step times are out of
// order a single stable permutation is applied across every per-step
// field so the channel/address/goal/limit correspondence is preserved
// exactly. The program itself is not modified.
func (p *Program) Marshal(slot uint8) []byte {
	n := p.n

	ticks := make([]uint32, n)
	for i := 0; i < n; i++ {
		ticks[i] = Ticks(p.seconds[i])
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	if !sort.SliceIsSorted(ticks, func(i, j int) bool { return ticks[i] < ticks[j] }) {
		sort.SliceStable(perm, func(i, j int) bool { return ticks[perm[i]] < ticks[perm[j]] })
	}

	buf := []byte{wire.Selector, wire.OpLoad, slot, byte(p.mt), byte(n)}
	buf = wire.PutUint32(buf, Ticks(p.loop))
	for _, i := range perm {
		buf = append(buf, p.channel[i])
	}
	for _, i := range perm {
		buf = append(buf, p.address[i])
	}
	for _, i := range perm {
		buf = wire.PutFloat32(buf, p.goal[i])
	}
	for _, i := range perm {
		buf = wire.PutFloat32(buf, p.velCur[i])
	}
	for _, i := range perm {
		buf = wire.PutFloat32(buf, p.accel[i])
	}
	for _, i := range perm {
		buf = wire.PutUint32(buf, ticks[i])
	}
	return buf
}
