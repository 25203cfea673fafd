package registry

// StubModuleLoader is a ModuleLoader double: it "loads" any library name by
// handing out a fresh handle and records loads/unloads for test assertions.
// It does not touch the filesystem or dlopen anything, since the real
// COM_Window-style module loader is out of scope for this module.
type StubModuleLoader struct {
	Loaded   map[Handle]string
	Unloaded []Handle
	next     Handle
}

// NewStubModuleLoader creates an empty stub loader.
func NewStubModuleLoader() *StubModuleLoader {
	return &StubModuleLoader{Loaded: make(map[Handle]string), next: 1}
}

// Load implements ModuleLoader.
func (l *StubModuleLoader) Load(windowName, moduleLibrary string) (Handle, error) {
	h := l.next
	l.next++
	l.Loaded[h] = windowName + ":" + moduleLibrary
	return h, nil
}

// Unload implements ModuleLoader.
func (l *StubModuleLoader) Unload(h Handle) { l.Unloaded = append(l.Unloaded, h) }
