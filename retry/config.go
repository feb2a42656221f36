package retry

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// optionsFile mirrors the data-configurable subset of Options for YAML
// decoding. Predicates and sinks are code, not data, and are attached by the
// caller after loading.
type optionsFile struct {
	Retries    int    `yaml:"retries"`
	Wait       string `yaml:"wait"`
	WaitBefore string `yaml:"wait_before"`
	Jitter     bool   `yaml:"jitter"`
	Name       string `yaml:"logger_name"`
	Verbose    bool   `yaml:"verbose"`
}

// ParseOptions decodes YAML configuration into Options. Durations use Go
// duration strings ("3s", "500ms"); omitted fields keep their defaults.
//
//	retries: 5
//	wait: 2s
//	wait_before: 100ms
//	jitter: true
//	logger_name: uploads
func ParseOptions(data []byte) (Options, error) {
	var file optionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Options{}, fmt.Errorf("parse retry options: %w", err)
	}

	if file.Retries < 0 {
		return Options{}, fmt.Errorf("parse retry options: retries must be at least 1, got %d", file.Retries)
	}

	opts := Options{
		Retries: file.Retries,
		Jitter:  file.Jitter,
		Name:    file.Name,
		Verbose: file.Verbose,
	}

	var err error
	if opts.Wait, err = parseDuration("wait", file.Wait); err != nil {
		return Options{}, err
	}
	if opts.WaitBefore, err = parseDuration("wait_before", file.WaitBefore); err != nil {
		return Options{}, err
	}
	if opts.Wait < 0 || opts.WaitBefore < 0 {
		return Options{}, fmt.Errorf("parse retry options: waits must not be negative")
	}

	return opts, nil
}

// LoadOptions reads and parses a YAML options file from disk
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("load retry options: %w", err)
	}
	return ParseOptions(data)
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse retry options: invalid %s duration %q: %w", field, value, err)
	}
	return d, nil
}
