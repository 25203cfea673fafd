package agent

import (
	"github.com/rocstar-hpc/cmoc/cmocerr"
	"github.com/rocstar-hpc/cmoc/registry"
)

type registrationKind int

const (
	regNew registrationKind = iota
	regClone
	regUse
)

// registration is a deferred creation record: {target_window, attr, kind,
// parameters}. It is replayed into the registry at
// CreateRegisteredDataitems time.
type registration struct {
	kind         registrationKind
	targetWindow string
	attr         string
	loc          registry.Location
	srcWindow    string
	srcAttr      string
}

// dataitemSignature is the recorded location of a created dataitem. A New
// registration of an already-created (target_window, attr) must carry the
// same location, otherwise it is an IncompatibleRedefinition
// ConfigurationError. Clone and Use registrations record the zero
// Location rather than their source's.
type dataitemSignature struct {
	loc registry.Location
}

// RegisterNewDataitem defers creation of a brand-new dataitem. An empty
// targetWindow resolves to the agent's surface window.
func (a *Agent) RegisterNewDataitem(targetWindow, attr string, loc registry.Location) {
	if targetWindow == "" {
		targetWindow = a.SurfaceWindow
	}
	a.pending = append(a.pending, registration{
		kind: regNew, targetWindow: targetWindow, attr: attr, loc: loc,
	})
}

// RegisterCloneDataitem defers creation of a dataitem that copies src's
// shape but not its storage. An empty srcWindow resolves to the agent's
// surface window.
func (a *Agent) RegisterCloneDataitem(targetWindow, attr, srcWindow, srcAttr string) {
	if targetWindow == "" {
		targetWindow = a.SurfaceWindow
	}
	if srcWindow == "" {
		srcWindow = a.SurfaceWindow
	}
	a.pending = append(a.pending, registration{
		kind: regClone, targetWindow: targetWindow, attr: attr, srcWindow: srcWindow, srcAttr: srcAttr,
	})
}

// RegisterUseDataitem defers a reference to an existing dataitem under a
// new (target_window, attr) name, without copying.
func (a *Agent) RegisterUseDataitem(targetWindow, attr, srcWindow, srcAttr string) {
	if targetWindow == "" {
		targetWindow = a.SurfaceWindow
	}
	if srcWindow == "" {
		srcWindow = a.SurfaceWindow
	}
	a.pending = append(a.pending, registration{
		kind: regUse, targetWindow: targetWindow, attr: attr, srcWindow: srcWindow, srcAttr: srcAttr,
	})
}

// CreateRegisteredDataitems replays the deferred registration queue into
// the registry and seals buf. A New registration of an already-created
// (target_window, attr) is skipped when its location matches the recorded
// signature and fails with IncompatibleRedefinition otherwise; a Clone or
// Use registration of an already-created name is skipped without any
// signature check.
func (a *Agent) CreateRegisteredDataitems(buf string) error {
	for _, r := range a.pending {
		sigKey := r.targetWindow + "." + r.attr
		sig := dataitemSignature{loc: r.loc}

		if existing, ok := a.signatures[sigKey]; ok {
			if existing != sig && r.kind == regNew {
				return &cmocerr.ConfigurationError{
					Agent: a.Name,
					Msg:   "incompatible redefinition of dataitem " + sigKey,
				}
			}
			continue
		}

		win := a.Registry.ResolveWindow(r.targetWindow)
		if !win.Valid() {
			win = a.Registry.NewWindow(r.targetWindow)
		}

		switch r.kind {
		case regNew:
			a.Registry.NewDataitem(win, r.attr, r.loc)
		case regClone, regUse:
			srcHandle := a.Registry.ResolveDataitem(r.srcWindow, r.srcAttr)
			if !srcHandle.Valid() {
				return &cmocerr.MissingDataItemError{Action: a.Name, Attr: r.srcAttr}
			}
			a.Registry.CloneDataitem(win, r.attr, srcHandle)
		}
		a.signatures[sigKey] = sig
	}
	a.pending = nil

	bufWin := a.Registry.ResolveWindow(buf)
	if !bufWin.Valid() {
		bufWin = a.Registry.NewWindow(buf)
	}
	a.Registry.SealWindow(bufWin)
	return nil
}
