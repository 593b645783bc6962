// Package config loads chart reading tunables from an optional JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"karyotype-reader/internal/chart"
)

// Load reads a JSON config file into chart parameters. Fields absent from
// the file keep their defaults, so a config file only needs the tunables it
// overrides. An empty path returns the defaults untouched.
func Load(path string) (chart.Params, error) {
	params := chart.DefaultParams()
	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := params.Validate(); err != nil {
		return params, fmt.Errorf("config: %s: %w", path, err)
	}
	return params, nil
}
