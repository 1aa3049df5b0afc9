package config

// TypesConfig maps attack category -> defender category -> multiplier.
type TypesConfig struct {
	Chart map[string]map[string]float64 `yaml:"chart"`
}
