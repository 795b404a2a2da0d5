package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/firewall2142/dedukti/internal/config"
)

// fileConfig is the shape of dkcheck.yaml (SPEC_FULL.md section 1): the
// rule files to load when none are given on the command line, a list of
// AC/ACU symbol names, and the gRPC server's listen address and cache
// file, so `dkcheck serve` can run with no flags in a project directory
// that carries one of these files. ac_symbols is parsed into ACSymbols but
// nothing reads it: it neither declares symbols AC nor is checked against
// the compiled signature.
type fileConfig struct {
	Rules     []string `yaml:"rules"`
	ACSymbols []string `yaml:"ac_symbols"`
	ServeAddr string   `yaml:"serve_addr"`
	CachePath string   `yaml:"cache_path"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		ServeAddr: config.DefaultServeAddr,
		CachePath: config.DefaultCachePath,
	}
}

// loadConfig reads path if it exists, overlaying its fields onto the
// defaults; a missing file is not an error, mirroring the teacher's
// convention of optional project-local configuration.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("dkcheck: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("dkcheck: parsing %s: %w", path, err)
	}
	return cfg, nil
}
