// Package interp implements the InterpolateAction family: time alignment
// between solvers whose step sizes differ or whose sub-step alpha is a
// fraction within a macro-step, with backup/restore for non-converged
// predictor-corrector steps.
package interp

import (
	"github.com/rocstar-hpc/cmoc/cmocerr"
	"github.com/rocstar-hpc/cmoc/registry"
)

// Anchor is the time convention used by an interpolate/extrapolate
// variant to interpret t_old.
type Anchor float64

const (
	// AnchorStart extrapolates linearly across [0,1].
	AnchorStart Anchor = 0
	// AnchorCentral is the central-difference convention.
	AnchorCentral Anchor = -0.5
	// AnchorLegacy is the reserved legacy anchor. It must abort
	// explicitly; see cmocerr.LegacyAnchorReserved.
	AnchorLegacy Anchor = -1
)

// symmetricClampLo and symmetricClampHi bound the central-difference
// anchor's gradient-limited correction to within one gradient-magnitude of
// the neighboring samples.
const (
	symmetricClampLo = -1.0
	symmetricClampHi = 1.0
)

// tNew is the normalized time of the current ("new") value: every
// InterpolateAction samples A at the end of its owning agent's macro-step,
// which is anchor 1 in the family's normalized [0,1] sub-step space.
const tNew = 1.0

// ExtrapolateLinear runs the core extrapolation kernel shared by every
// concrete InterpolateAction variant. aOut receives the result; the
// optional aGrad handle may be registry.HandleAbsent when the variant does
// not track a gradient.
func ExtrapolateLinear(
	num registry.NumericLib,
	actionName, attr string,
	anchor Anchor,
	dt, dtOld float64,
	aNew registry.Handle,
	aOld registry.Handle,
	tOut float64, aOut registry.Handle,
	aGrad registry.Handle,
) error {
	if tOut == tNew {
		num.Copy(aOut, aNew)
		return nil
	}
	if !aOld.Valid() {
		return &cmocerr.InterpolationError{Kind: cmocerr.MissingOldValue, Action: actionName, Attr: attr}
	}

	tOldVal := float64(anchor)
	if tOut == tOldVal {
		num.Copy(aOut, aOld)
		return nil
	}

	num.Sub(aOut, aNew, aOld)

	var a float64
	switch anchor {
	case AnchorStart:
		a = tOut - 1
	case AnchorCentral:
		if aGrad.Valid() {
			num.DivScalar(aOut, aOut, (dtOld+dt)/2)
			num.Limit1(aOut, aGrad, symmetricClampLo, symmetricClampHi)
			a = (tOut - 0.5) * dt
		} else {
			a = 2 * (tOut - 0.5) * dt / (dtOld + dt)
		}
	case AnchorLegacy:
		return &cmocerr.InterpolationError{Kind: cmocerr.LegacyAnchorReserved, Action: actionName, Attr: attr}
	default:
		return &cmocerr.InterpolationError{Kind: cmocerr.UnsupportedAnchor, Action: actionName, Attr: attr}
	}

	num.AddScaled(aOut, aNew, aOut, a)
	return nil
}

// ValidateAlpha enforces the family-wide alpha range every concrete variant
// checks before running.
func ValidateAlpha(actionName, attr string, alpha float64) error {
	const eps = 1e-6
	if alpha < -eps || alpha > 1+eps {
		return &cmocerr.InterpolationError{Kind: cmocerr.InvalidAlpha, Action: actionName, Attr: attr}
	}
	return nil
}
