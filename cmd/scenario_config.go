package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Define struct for YAML
type ScenarioConfig struct {
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

type Scenario struct {
	La                  []float64 `yaml:"la"`
	Psi                 []float64 `yaml:"psi"`
	P                   []float64 `yaml:"p"`
	Times               []float64 `yaml:"times"`
	Upsilon             float64   `yaml:"upsilon"`
	Phi                 float64   `yaml:"phi"`
	MaxNotifiedContacts int       `yaml:"max_notified_contacts"`
	AvgRecipients       float64   `yaml:"avg_recipients"`
	T                   float64   `yaml:"t"`
	MinTips             int       `yaml:"min_tips"`
	MaxTips             int       `yaml:"max_tips"`
}

// GetScenario loads a named scenario preset from a YAML file, or nil if the
// file holds no preset with that name.
func GetScenario(scenarioFilePath string, name string) *Scenario {
	// Read YAML file
	data, err := os.ReadFile(scenarioFilePath)
	if err != nil {
		panic(err)
	}

	// Parse YAML
	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		panic(err)
	}

	if preset, exists := cfg.Scenarios[name]; exists {
		logrus.Infof("Using preset scenario %v\n", name)
		return &preset
	}
	return nil
}

// applyScenario overrides the rate and bound flags with preset values.
// Zero-valued preset fields keep the flag values.
func applyScenario(s *Scenario) {
	if len(s.La) > 0 {
		la = s.La
	}
	if len(s.Psi) > 0 {
		psi = s.Psi
	}
	if len(s.P) > 0 {
		samplingProbs = s.P
	}
	if len(s.Times) > 0 {
		times = s.Times
	}
	if s.Upsilon > 0 {
		upsilon = s.Upsilon
	}
	if s.Phi > 0 {
		phi = s.Phi
	}
	if s.MaxNotifiedContacts > 0 {
		maxNotifiedContacts = s.MaxNotifiedContacts
	}
	if s.AvgRecipients > 0 {
		avgRecipients = s.AvgRecipients
	}
	if s.T > 0 {
		totalTime = s.T
	}
	if s.MinTips > 0 {
		minTips = s.MinTips
	}
	if s.MaxTips > 0 {
		maxTips = s.MaxTips
	}
}
