package combat

import "portmon/internal/config"

const (
	msgSuperEffective = "It's super effective!"
	msgNotVery        = "It's not very effective..."
	msgNoEffect       = "It had no effect..."
)

type Effectiveness struct {
	Multiplier float64
	Message    string
}

// TypeChart looks up damage multipliers. Pairs missing from the table are
// neutral; category names compare caselessly.
type TypeChart struct {
	chart map[string]map[string]float64
}

func NewTypeChart(cfg *config.TypesConfig) *TypeChart {
	tc := &TypeChart{chart: map[string]map[string]float64{}}
	if cfg == nil {
		return tc
	}
	for atk, row := range cfg.Chart {
		folded := make(map[string]float64, len(row))
		for def, mul := range row {
			folded[config.Fold(def)] = mul
		}
		tc.chart[config.Fold(atk)] = folded
	}
	return tc
}

func (tc *TypeChart) Multiplier(attack string, defender []string) float64 {
	mul := 1.0
	row, ok := tc.chart[config.Fold(attack)]
	if !ok {
		return mul
	}
	for _, d := range defender {
		if d == "" {
			continue
		}
		if v, ok := row[config.Fold(d)]; ok {
			mul *= v
		}
	}
	return mul
}

func (tc *TypeChart) Effectiveness(attack string, defender []string) Effectiveness {
	mul := tc.Multiplier(attack, defender)
	eff := Effectiveness{Multiplier: mul}
	switch {
	case mul > 1:
		eff.Message = msgSuperEffective
	case mul > 0 && mul < 1:
		eff.Message = msgNotVery
	case mul == 0:
		eff.Message = msgNoEffect
	}
	return eff
}
