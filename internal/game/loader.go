package game

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load returns the gameplay config, optionally overridden from a YAML
// file. A missing file (or empty path) yields the defaults. An override
// replaces a table wholesale when present; partial tables are not merged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}
	var raw Config
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(raw.RecruitRates) > 0 {
		cfg.RecruitRates = raw.RecruitRates
	}
	if len(raw.RecruitPool) > 0 {
		cfg.RecruitPool = raw.RecruitPool
	}
	if len(raw.TierCaps) > 0 {
		cfg.TierCaps = raw.TierCaps
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the semantic constraints the roll tables rely on.
func Validate(cfg Config) error {
	var errs []string

	sum := 0
	for _, r := range cfg.RecruitRates {
		if r.Rate < 0 {
			errs = append(errs, fmt.Sprintf("rate for %s must be >= 0", r.Tier))
		}
		sum += r.Rate
	}
	if sum != 100 {
		errs = append(errs, fmt.Sprintf("rates must sum to 100, got %d", sum))
	}
	for _, r := range cfg.RecruitRates {
		if len(cfg.RecruitPool[r.Tier]) == 0 {
			errs = append(errs, fmt.Sprintf("pool for %s is empty", r.Tier))
		}
	}
	if _, ok := cfg.TierCaps[TierCommon]; !ok {
		errs = append(errs, "caps must include Common (it is the fallback)")
	}
	for t, caps := range cfg.TierCaps {
		if caps.Mechanics <= 0 || caps.Mental <= 0 {
			errs = append(errs, fmt.Sprintf("caps for %s must be positive", t))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
