package sigmatch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config binds function names to named shapes. The CLI's vet command
// reads it from .sigmatch.yaml:
//
//	shapes:
//	  handler: ". . *"
//	functions:
//	  OnEvent: handler
type Config struct {
	// Shapes maps a shape name to its textual form.
	Shapes map[string]string `yaml:"shapes"`
	// Functions maps a function name to the shape it must have.
	Functions map[string]string `yaml:"functions"`
}

// LoadConfig reads and parses a configuration file.
func LoadConfig(path string) (Config, error) {
	var config Config

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("parsing %s: %w", path, err)
	}
	return config, nil
}

// Matchers compiles every shape in the config. It fails on the first
// shape that does not parse, naming it.
func (c Config) Matchers() (map[string]*Matcher, error) {
	matchers := make(map[string]*Matcher, len(c.Shapes))
	for name, shape := range c.Shapes {
		m, err := Parse(shape)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", name, err)
		}
		matchers[name] = m
	}

	for fn, shape := range c.Functions {
		if _, ok := matchers[shape]; !ok {
			return nil, fmt.Errorf("function %q references undefined shape %q", fn, shape)
		}
	}
	return matchers, nil
}
