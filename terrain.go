package main

import (
	"math"

	"github.com/yafetgetachew/battleoftheshapes-sub001/protocol"
)

// PlatformSpec describes one animated platform. Direction 0 keeps the
// platform stationary; +1 or -1 selects the oscillation sense.
type PlatformSpec struct {
	BaseX     float64
	Y         float64
	Width     float64
	Height    float64
	Amplitude float64
	Speed     float64
	Phase     float64
	Direction float64
}

// TerrainAnimator derives platform positions as a pure function of
// accumulated time. It carries no randomness, so every participant can run
// it locally; the host snapshot remains authoritative against tick skew.
type TerrainAnimator struct {
	specs   []PlatformSpec
	elapsed float64
}

func newTerrainAnimator(specs []PlatformSpec) *TerrainAnimator {
	return &TerrainAnimator{specs: append([]PlatformSpec(nil), specs...)}
}

// defaultPlatformLayout is the arena's stock platform set: two movers and a
// stationary center ledge.
func defaultPlatformLayout() []PlatformSpec {
	return []PlatformSpec{
		{BaseX: 150, Y: 420, Width: 120, Height: 16, Amplitude: 60, Speed: 0.8, Phase: 0, Direction: 1},
		{BaseX: 530, Y: 420, Width: 120, Height: 16, Amplitude: 60, Speed: 0.8, Phase: math.Pi, Direction: -1},
		{BaseX: 340, Y: 300, Width: 140, Height: 16, Amplitude: 0, Speed: 0, Phase: 0, Direction: 0},
	}
}

// Advance accumulates simulation time.
func (a *TerrainAnimator) Advance(dt float64) {
	a.elapsed += dt
}

// Reset zeroes accumulated time, restoring every platform to its base
// position on the next read.
func (a *TerrainAnimator) Reset() {
	a.elapsed = 0
}

// Platforms computes the current collision/render geometry.
func (a *TerrainAnimator) Platforms() []protocol.Platform {
	platforms := make([]protocol.Platform, 0, len(a.specs))
	for _, spec := range a.specs {
		offset := spec.Amplitude * spec.Direction * math.Sin(a.elapsed*spec.Speed+spec.Phase)
		platforms = append(platforms, protocol.Platform{
			X:      spec.BaseX + offset,
			Y:      spec.Y,
			Width:  spec.Width,
			Height: spec.Height,
		})
	}
	return platforms
}

// Elapsed reports accumulated animation time.
func (a *TerrainAnimator) Elapsed() float64 { return a.elapsed }
