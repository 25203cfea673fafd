package agent

import "github.com/rocstar-hpc/cmoc/registry"

// pcEntry is one predictor-corrector attribute registration: its live
// handle, its backup handle, and the relative-change tolerance used by
// checkConvergenceHelper.
type pcEntry struct {
	live, backup registry.Handle
	tol          float64
}

// RegisterPC registers name into pc_hdls with the given live/backup
// handles and convergence tolerance.
func (a *Agent) RegisterPC(name string, live, backup registry.Handle, tol float64) {
	a.pcHdls[name] = pcEntry{live: live, backup: backup, tol: tol}
}

// StoreSolutions copies live->backup when converged, or backup->live
// (restoring the last converged snapshot) when not.
func (a *Agent) StoreSolutions(converged bool) {
	for _, e := range a.pcHdls {
		if converged {
			a.Numeric.Copy(e.backup, e.live)
		} else {
			a.Numeric.Copy(e.live, e.backup)
		}
	}
}

// checkConvergenceHelper computes ‖cur-pre‖/‖cur‖ via the numeric library
// and returns true iff it is below tol. A zero-norm cur is only
// convergent when the difference is exactly zero too, avoiding a 0/0
// false positive.
func (a *Agent) checkConvergenceHelper(cur, pre registry.Handle, tol float64, name string) bool {
	scratch := a.scratch(name)
	a.Numeric.Sub(scratch, cur, pre)

	diffNorm := a.Numeric.Norm(scratch)
	curNorm := a.Numeric.Norm(cur)
	if curNorm == 0 {
		return diffNorm == 0
	}
	return diffNorm/curNorm < tol
}

func (a *Agent) scratch(name string) registry.Handle {
	if a.scratchHdls == nil {
		a.scratchHdls = make(map[string]registry.Handle)
	}
	if h, ok := a.scratchHdls[name]; ok {
		return h
	}
	win := a.Registry.ResolveWindow(a.SurfaceWindow)
	if !win.Valid() {
		win = a.Registry.NewWindow(a.SurfaceWindow)
	}
	h := a.Registry.NewDataitem(win, name+"_pc_diff", registry.Node)
	a.scratchHdls[name] = h
	return h
}
