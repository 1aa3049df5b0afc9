package combat

import "fmt"

// StatusDamage is the end-of-turn damage a status deals to a combatant
// with the given max HP.
func StatusDamage(kind StatusKind, maxHP int) int {
	switch kind {
	case StatusBurn:
		return maxHP / 16
	case StatusPoison:
		return maxHP / 8
	}
	return 0
}

// tickStatus applies burn or poison to side's active combatant and
// reports whether it fainted. Sleep and stun are spent in resolveAction.
func (b *Battle) tickStatus(side Side) bool {
	team := b.teams[side]
	mon := team.Active()
	if mon == nil || mon.Fainted() || (mon.Status != StatusBurn && mon.Status != StatusPoison) {
		return false
	}
	kind := mon.Status
	dmg := StatusDamage(kind, mon.MaxHP())
	expired := mon.spendStatusTurn()
	if dmg > 0 {
		msg := fmt.Sprintf("%s was hurt by poison!", mon.Name())
		if kind == StatusBurn {
			msg = fmt.Sprintf("%s was hurt by its burn!", mon.Name())
		}
		b.animate(side, AnimHit)
		b.pause(b.pacing.Hit)
		b.logf("%s", msg)
		b.notify(msg, NotifyStatus)
		mon.TakeDamage(dmg)
		b.hpChanged(side, team.ActiveIndex)
		b.pause(b.pacing.Hit)
		b.animate(side, AnimIdle)
		if mon.Fainted() {
			b.animate(side, AnimFaint)
			b.logf("%s fainted!", mon.Name())
			b.pause(b.pacing.Faint)
			return true
		}
	}
	b.statusChanged(side, team.ActiveIndex)
	if expired {
		b.pause(b.pacing.Status)
		mon.ClearStatus()
		b.statusChanged(side, team.ActiveIndex)
		msg := fmt.Sprintf("%s was cured of poison!", mon.Name())
		if kind == StatusBurn {
			msg = fmt.Sprintf("%s's burn was healed!", mon.Name())
		}
		b.logf("%s", msg)
		b.notify(msg, NotifyInfo)
	}
	return false
}
