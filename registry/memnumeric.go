package registry

import "math"

// MemNumericLib is a scalar-valued NumericLib double: every handle holds
// one float64. It is not a production numeric kernel — the real surface-
// overlay/FEM numeric libraries operate on distributed mesh arrays and are
// out of scope for this module — but it is enough to exercise and test
// the interpolation kernel and predictor-corrector convergence check
// end to end.
type MemNumericLib struct {
	values map[Handle]float64
}

// NewMemNumericLib creates an empty scalar numeric double.
func NewMemNumericLib() *MemNumericLib {
	return &MemNumericLib{values: make(map[Handle]float64)}
}

// Set assigns h's scalar value, for test and demo setup.
func (n *MemNumericLib) Set(h Handle, v float64) { n.values[h] = v }

// Get reads h's scalar value, for test and demo assertions.
func (n *MemNumericLib) Get(h Handle) float64 { return n.values[h] }

func (n *MemNumericLib) Copy(dst, src Handle) { n.values[dst] = n.values[src] }

func (n *MemNumericLib) Sub(dst, a, b Handle) { n.values[dst] = n.values[a] - n.values[b] }

func (n *MemNumericLib) DivScalar(dst, a Handle, s float64) { n.values[dst] = n.values[a] / s }

func (n *MemNumericLib) AddScaled(dst, a, b Handle, s float64) {
	n.values[dst] = n.values[a] + s*n.values[b]
}

func (n *MemNumericLib) Limit1(dst, ref Handle, lo, hi float64) {
	v, r := n.values[dst], n.values[ref]
	if v < lo*r {
		v = lo * r
	}
	if v > hi*r {
		v = hi * r
	}
	n.values[dst] = v
}

func (n *MemNumericLib) Zero(dst Handle) { n.values[dst] = 0 }

func (n *MemNumericLib) Norm(h Handle) float64 { return math.Abs(n.values[h]) }
