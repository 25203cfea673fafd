package registry

import "fmt"

// MemRegistry is an in-memory DataRegistry used by CMOC's own test suite. It
// is not a production backing store: real deployments resolve handles
// against the mesh/data registry described in the system's external
// interfaces, which is out of scope for this module.
type MemRegistry struct {
	windows   map[string]Handle
	dataitems map[Handle]string
	locations map[Handle]Location
	sealed    map[Handle]bool
	next      Handle
}

// NewMemRegistry creates an empty in-memory registry.
func NewMemRegistry() *MemRegistry {
	return &MemRegistry{
		windows:   make(map[string]Handle),
		dataitems: make(map[Handle]string),
		locations: make(map[Handle]Location),
		sealed:    make(map[Handle]bool),
		next:      1,
	}
}

// SealWindow implements DataRegistry.
func (r *MemRegistry) SealWindow(h Handle) {
	if r.sealed[h] {
		panic(fmt.Sprintf("window %d already sealed", h))
	}
	r.sealed[h] = true
}

func (r *MemRegistry) alloc() Handle {
	h := r.next
	r.next++
	return h
}

// ResolveWindow implements DataRegistry.
func (r *MemRegistry) ResolveWindow(name string) Handle {
	if h, ok := r.windows[name]; ok {
		return h
	}
	return HandleAbsent
}

// ResolveDataitem implements DataRegistry.
func (r *MemRegistry) ResolveDataitem(windowName, attribute string) Handle {
	key := windowName + "." + attribute
	for h, name := range r.dataitems {
		if name == key {
			return h
		}
	}
	return HandleAbsent
}

// NewWindow implements DataRegistry.
func (r *MemRegistry) NewWindow(name string) Handle {
	if _, ok := r.windows[name]; ok {
		panic("window already exists: " + name)
	}
	h := r.alloc()
	r.windows[name] = h
	return h
}

// NewDataitem implements DataRegistry.
func (r *MemRegistry) NewDataitem(window Handle, attribute string, loc Location) Handle {
	name := r.windowName(window)
	key := name + "." + attribute
	h := r.alloc()
	r.dataitems[h] = key
	r.locations[h] = loc
	return h
}

// CloneDataitem implements DataRegistry.
func (r *MemRegistry) CloneDataitem(window Handle, attribute string, src Handle) Handle {
	return r.NewDataitem(window, attribute, r.locations[src])
}

// Delete implements DataRegistry.
func (r *MemRegistry) Delete(h Handle) {
	delete(r.dataitems, h)
	delete(r.locations, h)
	for name, wh := range r.windows {
		if wh == h {
			delete(r.windows, name)
		}
	}
}

func (r *MemRegistry) windowName(h Handle) string {
	for name, wh := range r.windows {
		if wh == h {
			return name
		}
	}
	panic(fmt.Sprintf("unknown window handle %d", h))
}
