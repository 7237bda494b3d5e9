package spreadsheet

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed columns.yaml
var columnsYAML []byte

type columnConfig struct {
	Version int                 `yaml:"version"`
	Columns map[string][]string `yaml:"columns"`
}

// RequiredColumns are the canonical headers of a bulk upload, in template
// order.
var RequiredColumns = []string{"name", "brand", "model", "category"}

// aliases maps a normalized header to its canonical column.
var aliases = mustLoadAliases(columnsYAML)

func mustLoadAliases(data []byte) map[string]string {
	m, err := loadAliases(data)
	if err != nil {
		panic(err)
	}
	return m
}

func loadAliases(data []byte) (map[string]string, error) {
	var cfg columnConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse column aliases: %w", err)
	}

	out := make(map[string]string)
	for canonical, names := range cfg.Columns {
		out[normalizeHeader(canonical)] = canonical
		for _, n := range names {
			out[normalizeHeader(n)] = canonical
		}
	}
	return out, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}
