package config

import (
	"strings"

	"golang.org/x/text/cases"
)

type RosterConfig struct {
	Mons []MonDef `yaml:"mons"`
}

type MonDef struct {
	ID          int       `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	URL         string    `yaml:"url" json:"url,omitempty"`
	Description string    `yaml:"description" json:"description,omitempty"`
	Types       []string  `yaml:"types" json:"types"`
	Stats       StatBlock `yaml:"stats" json:"stats"`
	Moves       []MoveDef `yaml:"moves" json:"moves"`
}

type StatBlock struct {
	HP  int `yaml:"hp" json:"hp"`
	Atk int `yaml:"atk" json:"atk"`
	Def int `yaml:"def" json:"def"`
	Spd int `yaml:"spd" json:"spd"`
}

type MoveDef struct {
	Name        string     `yaml:"name" json:"name"`
	Power       int        `yaml:"power" json:"power"`
	Type        string     `yaml:"type" json:"type"`
	Accuracy    float64    `yaml:"accuracy" json:"accuracy"`
	PP          int        `yaml:"pp" json:"pp"`
	CritChance  float64    `yaml:"crit_chance" json:"crit_chance,omitempty"`
	Effect      *EffectDef `yaml:"effect" json:"effect,omitempty"`
	Description string     `yaml:"description" json:"description,omitempty"`
}

// EffectDef is a secondary status a move may inflict on hit.
type EffectDef struct {
	Status string  `yaml:"status" json:"status"`
	Chance float64 `yaml:"chance" json:"chance"`
}

// Fold normalizes a category or search term for caseless comparison.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func (rc *RosterConfig) ByID(id int) (*MonDef, bool) {
	for i := range rc.Mons {
		if rc.Mons[i].ID == id {
			return &rc.Mons[i], true
		}
	}
	return nil, false
}

// Search matches term against names and categories. An empty term returns
// the whole roster.
func (rc *RosterConfig) Search(term string) []*MonDef {
	needle := Fold(term)
	out := make([]*MonDef, 0, len(rc.Mons))
	for i := range rc.Mons {
		m := &rc.Mons[i]
		if needle == "" || strings.Contains(Fold(m.Name), needle) {
			out = append(out, m)
			continue
		}
		for _, t := range m.Types {
			if strings.Contains(Fold(t), needle) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
