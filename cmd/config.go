package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/counterbank/counter-sim/sim"
)

// LoadConfig reads a run configuration from a YAML file. Fields missing from
// the file keep the values of sim.DefaultConfig. Unknown keys are rejected so
// that typos surface as errors.
func LoadConfig(path string) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return parseConfig(data, cfg)
}

func parseConfig(data []byte, base sim.Config) (sim.Config, error) {
	cfg := base
	// An empty document decodes to io.EOF; the defaults then stand.
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}
