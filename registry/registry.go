// Package registry defines the external collaborators CMOC schedules work
// against: the mesh/data registry, the module loader and the numeric
// library. CMOC never implements these itself; it only depends on the
// interfaces here and ships small in-memory doubles for its own tests.
package registry

import "fmt"

// Handle identifies a dataitem or window registered with the DataRegistry.
// The zero value, HandleAbsent, never refers to a real dataitem.
type Handle int

// HandleAbsent is the handle value returned for an unresolved name.
const HandleAbsent Handle = 0

// Valid reports whether h refers to a real registration.
func (h Handle) Valid() bool { return h > HandleAbsent }

// Location describes where a dataitem's values live.
type Location int

const (
	// Window is a whole-window attribute (one value per window).
	Window Location = iota
	// Pane is a pane-level attribute.
	Pane
	// Node is a per-mesh-node attribute.
	Node
	// Element is a per-mesh-element attribute.
	Element
)

func (l Location) String() string {
	switch l {
	case Window:
		return "window"
	case Pane:
		return "pane"
	case Node:
		return "node"
	case Element:
		return "element"
	default:
		return fmt.Sprintf("Location(%d)", int(l))
	}
}

// DataRegistry is the external mesh/data registry collaborator described by
// the component's external interface contract. CMOC resolves dataitem and
// window handles through it and never accesses the backing storage any
// other way.
type DataRegistry interface {
	// ResolveWindow returns the handle for a named window, or HandleAbsent
	// if no window with that name has been created.
	ResolveWindow(name string) Handle

	// ResolveDataitem returns the handle for "<window>.<attribute>", or
	// HandleAbsent if it does not exist.
	ResolveDataitem(windowName, attribute string) Handle

	// NewWindow creates an empty window and returns its handle. Creating a
	// window that already exists is a caller error and panics, mirroring
	// the registry's own abort-on-misuse contract.
	NewWindow(name string) Handle

	// NewDataitem registers a new dataitem on an existing window. loc
	// describes where the attribute's values live.
	NewDataitem(window Handle, attribute string, loc Location) Handle

	// CloneDataitem registers a new dataitem with the same shape as src but
	// does not share storage with it.
	CloneDataitem(window Handle, attribute string, src Handle) Handle

	// Delete releases a handle obtained from this registry.
	Delete(h Handle)

	// SealWindow marks a window init_done: its dataitem set is frozen and
	// the window becomes usable by actions. Sealing an already-sealed
	// window is a caller error and panics.
	SealWindow(h Handle)
}

// ModuleLoader loads and looks up named physics modules (the "COM_Window"
// shared-library analogue). Agents load their module through it at
// construction and release it with Unload.
type ModuleLoader interface {
	// Load loads the module backing windowName if it is not already
	// resident, returning an opaque module identifier.
	Load(windowName, moduleLibrary string) (Handle, error)

	// Unload releases a previously loaded module.
	Unload(h Handle)
}

// NumericLib is the vector/array numeric kernel collaborator InterpolateAction
// relies on for its arithmetic (copy, subtract, scale, limiting). CMOC's
// interp package never touches raw buffers directly; every arithmetic step
// in the extrapolation kernel is expressed as a NumericLib call so that the
// underlying storage layout (node-centered, element-centered, strided,
// distributed) stays opaque to the scheduler.
type NumericLib interface {
	// Copy copies src into dst. Both must resolve to dataitems of identical
	// shape; a shape mismatch is a MissingDataItem-class error surfaced by
	// the caller, not by NumericLib itself.
	Copy(dst, src Handle)

	// Sub computes dst = a - b elementwise.
	Sub(dst, a, b Handle)

	// DivScalar computes dst = a / s elementwise. Implementations must
	// treat s == 0 as a caller error (CMOC's kernel never calls this with
	// s == 0; see interp.Backup).
	DivScalar(dst, a Handle, s float64)

	// AddScaled computes dst = a + s*b elementwise.
	AddScaled(dst, a, b Handle, s float64)

	// Limit1 clamps each element of dst to lie within [lo, hi] scaled per
	// element by the corresponding entry of ref, matching the original
	// kernel's limiter used on the central-difference anchor.
	Limit1(dst, ref Handle, lo, hi float64)

	// Zero sets every element of dst to zero.
	Zero(dst Handle)

	// Norm returns a reduction norm over h's elements (the "‖·‖" used by
	// Agent.checkConvergenceHelper's relative-change test).
	Norm(h Handle) float64
}
