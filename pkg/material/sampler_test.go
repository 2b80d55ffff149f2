package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// fixedSampler returns the same draws every time, for steering scatter decisions
type fixedSampler struct {
	oneD float64
	twoD core.Vec2
}

func (f fixedSampler) Get1D() float64 { return f.oneD }

func (f fixedSampler) Get2D() core.Vec2 { return f.twoD }
