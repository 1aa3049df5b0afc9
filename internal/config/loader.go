package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Data bundles the read-only reference tables a battle is built from.
type Data struct {
	Roster *RosterConfig
	Items  *ItemsConfig
	Types  *TypesConfig
}

func LoadAll(dir string) (*Data, error) {
	var rc RosterConfig
	var ic ItemsConfig
	var tc TypesConfig
	if err := loadYAML(filepath.Join(dir, "roster.yaml"), &rc); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, "items.yaml"), &ic); err != nil {
		return nil, err
	}
	if err := loadYAML(filepath.Join(dir, "types.yaml"), &tc); err != nil {
		return nil, err
	}
	d := &Data{Roster: &rc, Items: &ic, Types: &tc}
	if err := d.Validate(DefaultTeamSize); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	return d, nil
}
