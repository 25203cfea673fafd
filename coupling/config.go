package coupling

import (
	"os"

	"gopkg.in/yaml.v3"
)

// AgentConfig is one agent roster entry in a Config file.
type AgentConfig struct {
	Name          string `yaml:"name"`
	ModuleLibrary string `yaml:"module_library"`
	SurfaceWindow string `yaml:"surface_window"`
	VolumeWindow  string `yaml:"volume_window"`
}

// Config is the YAML-loadable set of construction parameters a Coupling
// needs before it can build its agent roster and time-step schedule:
// everything the source's constructor takes as out-of-band configuration
// (§6 "CLI / configuration... injected via the Coupling constructor").
type Config struct {
	Name string `yaml:"name"`

	RestartPath string `yaml:"restart_path"`

	TimeStart float64 `yaml:"time_start"`
	TimeEnd   float64 `yaml:"time_end"`
	DtInitial float64 `yaml:"dt_initial"`

	MaxPredCorr int `yaml:"max_pred_corr"`

	Agents []AgentConfig `yaml:"agents"`
}

// LoadConfig reads and parses a Config from a YAML file, mirroring
// core/program.go's LoadProgramFile.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
