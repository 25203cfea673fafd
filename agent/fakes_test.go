package agent_test

import (
	"github.com/rocstar-hpc/cmoc/agent"
	"github.com/rocstar-hpc/cmoc/registry"
)

// fakeLoader is a registry.ModuleLoader double that always succeeds.
type fakeLoader struct {
	loaded   map[registry.Handle]string
	next     registry.Handle
	unloaded []registry.Handle
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{loaded: make(map[registry.Handle]string), next: 1}
}

func (l *fakeLoader) Load(windowName, moduleLibrary string) (registry.Handle, error) {
	h := l.next
	l.next++
	l.loaded[h] = moduleLibrary
	return h, nil
}

func (l *fakeLoader) Unload(h registry.Handle) { l.unloaded = append(l.unloaded, h) }

// failingLoader always fails Load.
type failingLoader struct{ err error }

func (l *failingLoader) Load(windowName, moduleLibrary string) (registry.Handle, error) {
	return registry.HandleAbsent, l.err
}
func (l *failingLoader) Unload(h registry.Handle) {}

// fakeModule is an agent.Module double driven entirely by the test: it
// records lifecycle calls and optionally invokes InitCallback during
// Initialize, mirroring how a real physics module would.
type fakeModule struct {
	a                *agent.Agent
	surfWindow       string
	volWindow        string
	initialized      bool
	finalized        bool
	updateCalls      []updateCall
	initErr          error
	updateErr        error
	finalizeErr      error
	skipInitCallback bool
}

type updateCall struct {
	t, dt, alpha float64
}

func (m *fakeModule) Initialize(a *agent.Agent) error {
	m.a = a
	m.initialized = true
	if m.initErr != nil {
		return m.initErr
	}
	if m.skipInitCallback {
		return nil
	}
	return a.InitCallback(m.surfWindow, m.volWindow, nil)
}

func (m *fakeModule) UpdateSolution(t, dt, alpha float64) error {
	m.updateCalls = append(m.updateCalls, updateCall{t, dt, alpha})
	return m.updateErr
}

func (m *fakeModule) Finalize() error {
	m.finalized = true
	return m.finalizeErr
}

// fakeSpec is an agent.Specialization double.
type fakeSpec struct {
	createBuffersErr error
	createCalls      int
	maxDt            float64
	convergent       bool
}

func (s *fakeSpec) CreateBuffers(a *agent.Agent) error {
	s.createCalls++
	return s.createBuffersErr
}

func (s *fakeSpec) MaxTimestep(t, dt float64) float64 {
	if s.maxDt > 0 && s.maxDt < dt {
		return s.maxDt
	}
	return dt
}

func (s *fakeSpec) CheckConvergence() bool { return s.convergent }
