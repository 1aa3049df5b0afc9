package combat

import (
	"fmt"
	"math"
)

const (
	damageDivisor = 5
	damageFlat    = 2
	minRoll       = 0.85
	rollSpan      = 0.15
	critFactor    = 1.5
)

// BaseDamage is the pre-roll damage of a hit before type and crit
// multipliers.
func BaseDamage(power, atk, def int) int {
	if def <= 0 {
		def = 1
	}
	return int(math.Floor(float64(power)*float64(atk)/float64(def)/damageDivisor + damageFlat))
}

// Damage applies the random factor and the type multiplier to a base,
// flooring after each step.
func Damage(base int, factor, mult float64) int {
	d := math.Floor(float64(base) * factor)
	return int(math.Floor(d * mult))
}

func rollFactor(rng Roller) float64 { return minRoll + rng.Float64()*rollSpan }

// resolveAction carries out side's active combatant using m on the other
// side's active combatant. It reports whether the defender fainted and
// leaves the faint itself to the caller.
func (b *Battle) resolveAction(side Side, m *Move) bool {
	opp := side.Opponent()
	atkTeam, defTeam := b.teams[side], b.teams[opp]
	attacker, defender := atkTeam.Active(), defTeam.Active()
	stats := b.stats[side]

	if attacker.Status.Immobilizing() {
		kind := attacker.Status
		expired := attacker.spendStatusTurn()
		b.statusChanged(side, atkTeam.ActiveIndex)
		b.logf("%s is %s and can't move!", attacker.Name(), kind.verb())
		b.notify(fmt.Sprintf("%s is %s!", attacker.Name(), kind.verb()), NotifyStatus)
		if expired {
			b.pause(b.pacing.Status)
			attacker.ClearStatus()
			b.statusChanged(side, atkTeam.ActiveIndex)
			b.logf("%s woke up!", attacker.Name())
		}
		b.setTrainer(side, TrainerIdle)
		return false
	}

	m.PP--
	b.say(side, attackLine(b.rng, side, attacker.Name(), m.Name()))
	b.logf("%s used %s!", attacker.Name(), m.Name())
	b.animate(side, AnimAttack)
	b.pause(b.pacing.Attack)

	if b.rng.Float64() >= m.Def.Accuracy {
		b.logf("%s's attack missed!", attacker.Name())
		b.notify("Attack missed!", NotifyMiss)
		b.pause(b.pacing.Status)
		b.settle(side)
		return false
	}

	damage := 0
	if m.Power() > 0 {
		eff := b.chart.Effectiveness(m.Type(), defender.Types())
		if eff.Multiplier > 1 {
			stats.SuperEffectiveHits++
		}
		damage = Damage(BaseDamage(m.Power(), attacker.Attack(), defender.Defense()), rollFactor(b.rng), eff.Multiplier)
		if m.Def.CritChance > 0 && b.rng.Float64() < m.Def.CritChance {
			damage = int(math.Floor(float64(damage) * critFactor))
			b.notify("A critical hit!", NotifyCritical)
			b.logf("A critical hit!")
			stats.CritsLanded++
		}
		stats.DamageDealt += damage
		if eff.Message != "" {
			b.notify(eff.Message, NotifyEffectiveness)
			b.logf("%s", eff.Message)
		}
	}
	b.animate(opp, AnimHit)
	defender.TakeDamage(damage)
	b.hpChanged(opp, defTeam.ActiveIndex)
	b.pause(b.pacing.Hit)

	if st := m.Status(); st != StatusNone && defender.Status == StatusNone && !defender.Fainted() {
		if b.rng.Float64() < m.Def.Effect.Chance {
			b.pause(b.pacing.Hit)
			defender.ApplyStatus(st)
			b.statusChanged(opp, defTeam.ActiveIndex)
			verb := "was " + st.verb()
			if st == StatusSleep {
				verb = "fell asleep"
			}
			msg := fmt.Sprintf("%s %s!", defender.Name(), verb)
			b.logf("%s", msg)
			b.notify(msg, NotifyStatus)
			stats.StatusInflicted++
		}
	}
	b.pause(b.pacing.Hit)

	if defender.Fainted() {
		b.animate(opp, AnimFaint)
		b.logf("%s fainted!", defender.Name())
		b.pause(b.pacing.Faint)
		return true
	}
	b.settle(side)
	return false
}

// settle returns both combatants and the acting trainer to rest.
func (b *Battle) settle(side Side) {
	b.animate(side, AnimIdle)
	b.animate(side.Opponent(), AnimIdle)
	b.setTrainer(side, TrainerIdle)
}
