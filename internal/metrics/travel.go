package metrics

import (
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
)

// ChargeTravel is the mean distance the charges move per frame. Frames in
// which the charge count changes contribute nothing.
type ChargeTravel struct {
	name    string
	prev    []dynamo.Charge
	sum     float64
	samples int
}

func NewChargeTravel() *ChargeTravel {
	return &ChargeTravel{
		name: "charge_travel",
	}
}

func (c *ChargeTravel) Name() string {
	return c.name
}

func (c *ChargeTravel) Observe(f *field.Configuration, t float64) {
	cur := f.Charges()
	if c.prev != nil && len(c.prev) == len(cur) {
		for i := range cur {
			c.sum += math.Sqrt(cur[i].DistSq(c.prev[i].X, c.prev[i].Y))
		}
		c.samples++
	}
	c.prev = cur
}

func (c *ChargeTravel) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ChargeTravel) Reset() {
	c.prev = nil
	c.sum = 0
	c.samples = 0
}
