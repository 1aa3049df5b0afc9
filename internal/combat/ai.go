package combat

import (
	"math"
	"sort"
)

const (
	stabBonus       = 1.5
	effectWeight    = 45.0
	finisherBonus   = 1.5
	matchupSwing    = 60.0
	escapeBonus     = 50.0
	escapeThreshold = 0.25
	poolRatio       = 0.85
	minPool         = 4
)

// Decider scores legal actions for whichever side it is asked about. It
// never mutates the battle; the only state it touches is the Roller used
// to pick among near-best options.
type Decider struct {
	Chart *TypeChart
}

func NewDecider(chart *TypeChart) *Decider {
	return &Decider{Chart: chart}
}

func (d *Decider) ScoreMove(m *Move, attacker, defender *Combatant) float64 {
	eff := d.Chart.Multiplier(m.Type(), defender.Types())
	stab := 1.0
	if attacker.HasType(m.Type()) {
		stab = stabBonus
	}
	score := float64(m.Power()) * (float64(attacker.Attack()) / float64(defender.Defense())) * stab * eff
	if m.Def.Effect != nil && defender.Status == StatusNone {
		score += effectWeight * m.Def.Effect.Chance
	}
	score *= m.Def.Accuracy
	if score >= float64(defender.HP) {
		score *= finisherBonus
	}
	return score
}

// ScoreSwitch rates bringing candidate in for current while opponent is
// on the field.
func (d *Decider) ScoreSwitch(candidate, current, opponent *Combatant) float64 {
	score := 0.0
	incoming := 0.0
	for _, t := range opponent.Types() {
		incoming = math.Max(incoming, d.Chart.Multiplier(t, candidate.Types()))
	}
	switch {
	case incoming < 1:
		score += matchupSwing
	case incoming > 1:
		score -= matchupSwing
	}
	score += d.bestMoveScore(candidate, opponent)
	score *= candidate.HPFraction()
	if current.HPFraction() < escapeThreshold {
		score += escapeBonus
	}
	return score
}

func (d *Decider) bestMoveScore(attacker, defender *Combatant) float64 {
	best := 0.0
	for _, m := range attacker.UsableMoves() {
		best = math.Max(best, d.ScoreMove(m, attacker, defender))
	}
	return best
}

// Options lists every legal action for active, best first. Switches are
// left out when the side switched on its previous turn.
func (d *Decider) Options(active, opponent *Combatant, team []*Combatant, activeIndex int, switchedLastTurn bool) []Action {
	var opts []Action
	for _, m := range active.UsableMoves() {
		a := MoveAction(m)
		a.Score = d.ScoreMove(m, active, opponent)
		opts = append(opts, a)
	}
	if !switchedLastTurn {
		for i, mon := range team {
			if i == activeIndex || mon.Fainted() {
				continue
			}
			a := SwitchAction(i)
			a.Score = d.ScoreSwitch(mon, active, opponent)
			opts = append(opts, a)
		}
	}
	sort.SliceStable(opts, func(i, j int) bool { return opts[i].Score > opts[j].Score })
	return opts
}

// Choose picks uniformly among the near-best options. ok is false when the
// side has nothing legal to do.
func (d *Decider) Choose(active, opponent *Combatant, team []*Combatant, activeIndex int, switchedLastTurn bool, rng Roller) (Action, bool) {
	opts := d.Options(active, opponent, team, activeIndex, switchedLastTurn)
	if len(opts) == 0 {
		return Action{}, false
	}
	best := opts[0].Score
	if best <= 0 {
		return opts[0], true
	}
	pool := opts[:0:0]
	for _, o := range opts {
		if o.Score >= best*poolRatio {
			pool = append(pool, o)
		}
	}
	if len(pool) < minPool {
		pool = opts[:min(minPool, len(opts))]
	}
	return pool[rng.Intn(len(pool))], true
}

// BestReplacement picks the living teammate with the highest switch score,
// used when the side must replace a fainted combatant.
func (d *Decider) BestReplacement(team *Team, opponent *Combatant) (int, bool) {
	current := team.Active()
	bestIdx, bestScore := -1, math.Inf(-1)
	for i, mon := range team.Mons {
		if mon.Fainted() || i == team.ActiveIndex {
			continue
		}
		s := d.ScoreSwitch(mon, current, opponent)
		if s > bestScore {
			bestIdx, bestScore = i, s
		}
	}
	return bestIdx, bestIdx >= 0
}
