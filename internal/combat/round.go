package combat

import "portmon/internal/config"

// prepare validates a player action under the session lock. On success it
// marks the round as processing and returns the round to run, still under
// the lock.
func (b *Battle) prepare(a Action) (func(), bool) {
	if !b.acceptingInput() {
		return nil, false
	}
	switch a.Kind {
	case ActMove:
		return b.prepareMove(a.Move)
	case ActSwitch:
		return b.prepareSwitch(a.Index)
	case ActItem:
		return b.prepareItem(a.Item, a.Index)
	case ActRun:
		return b.prepareRun()
	}
	return nil, false
}

func (b *Battle) begin() {
	b.processing = true
	b.playerTurn = false
}

// finishRound releases the input gate and lets the auto-battler look at
// the new state.
func (b *Battle) finishRound() {
	b.processing = false
	b.idle.Broadcast()
	b.auto.arm()
}

func (b *Battle) prepareMove(m *Move) (func(), bool) {
	if !b.phase.Is(PhaseInBattle) || m == nil {
		return nil, false
	}
	team := b.teams[SidePlayer]
	active := team.Active()
	owned := false
	for _, own := range active.Moves {
		owned = owned || own == m
	}
	if !owned {
		return nil, false
	}
	if !m.Usable() && !active.Status.Immobilizing() {
		b.logf("There's no PP left for %s!", m.Name())
		return nil, false
	}
	b.begin()
	team.SwitchedLastTurn = false
	return func() {
		b.setTrainer(SidePlayer, TrainerCommanding)
		b.pause(b.pacing.Command)
		if b.strike(SidePlayer, m) {
			b.finishRound()
			return
		}
		if b.phase.Is(PhaseInBattle) && !b.endOfTurn(SidePlayer) && b.phase.Is(PhaseInBattle) {
			b.opponentHalf()
		}
		b.finishRound()
	}, true
}

func (b *Battle) prepareSwitch(i int) (func(), bool) {
	forced := b.phase.Is(PhaseForcedSwitch)
	if !forced && !b.phase.Is(PhaseInBattle) {
		return nil, false
	}
	team := b.teams[SidePlayer]
	if i < 0 || i >= len(team.Mons) {
		return nil, false
	}
	switch {
	case i == team.ActiveIndex:
		b.logf("%s is already in battle!", team.Mons[i].Name())
		return nil, false
	case team.Mons[i].Fainted():
		b.logf("%s has fainted and can't battle!", team.Mons[i].Name())
		return nil, false
	}
	b.begin()
	if !forced {
		team.SwitchedLastTurn = true
	}
	return func() {
		old := team.Active().Name()
		b.switchActive(SidePlayer, i, "You switched from %s to %s!", old, team.Mons[i].Name())
		if forced {
			_ = b.phase.Fire(evReplace)
			b.playerTurn = true
			b.notify("Your Turn", NotifyTurn)
			b.finishRound()
			return
		}
		b.opponentHalf()
		b.finishRound()
	}, true
}

func (b *Battle) prepareItem(key string, target int) (func(), bool) {
	if !b.phase.Is(PhaseInBattle) {
		return nil, false
	}
	team := b.teams[SidePlayer]
	slot := b.inv.Slot(key)
	if slot == nil || target < 0 || target >= len(team.Mons) {
		return nil, false
	}
	if slot.Quantity <= 0 {
		b.logf("You don't have any %s left!", slot.Name)
		return nil, false
	}
	mon := team.Mons[target]
	if mon.Fainted() {
		b.logf("%s has fainted and can't use items!", mon.Name())
		return nil, false
	}
	switch slot.Def.Effect.Type {
	case config.ItemHeal:
		if mon.HP >= mon.MaxHP() {
			b.logf("%s's HP is already full!", mon.Name())
			return nil, false
		}
	case config.ItemCureStatus:
		if mon.Status == StatusNone {
			b.logf("%s has no status condition!", mon.Name())
			return nil, false
		}
	default:
		return nil, false
	}
	b.begin()
	team.SwitchedLastTurn = false
	return func() {
		if slot.Def.Effect.Type == config.ItemHeal {
			mon.Heal(slot.Def.Effect.Amount)
			b.hpChanged(SidePlayer, target)
		} else {
			mon.ClearStatus()
			b.statusChanged(SidePlayer, target)
		}
		b.setTrainer(SidePlayer, TrainerCommanding)
		b.pause(b.pacing.Command)
		b.logf("Used %s on %s.", slot.Name, mon.Name())
		slot.Quantity--
		b.setTrainer(SidePlayer, TrainerIdle)
		b.opponentHalf()
		b.finishRound()
	}, true
}

func (b *Battle) prepareRun() (func(), bool) {
	if !b.phase.Is(PhaseInBattle) && !b.phase.Is(PhaseForcedSwitch) {
		return nil, false
	}
	b.begin()
	return func() {
		b.logf("You ran away from the battle...")
		b.endMatch(SideCPU)
		b.finishRound()
	}, true
}

// strike resolves side's move and handles a resulting faint.
func (b *Battle) strike(side Side, m *Move) bool {
	if !b.resolveAction(side, m) {
		return false
	}
	opp := side.Opponent()
	b.handleFaint(opp, b.teams[opp].ActiveIndex)
	return true
}

// endOfTurn ticks side's status and handles a resulting faint.
func (b *Battle) endOfTurn(side Side) bool {
	if !b.tickStatus(side) {
		return false
	}
	b.handleFaint(side, b.teams[side].ActiveIndex)
	return true
}

func (b *Battle) switchActive(side Side, to int, format, oldName, newName string) {
	team := b.teams[side]
	from := team.ActiveIndex
	b.setTrainer(side, TrainerCommanding)
	b.pause(b.pacing.Command)
	b.animate(side, AnimSwitchOut)
	b.pause(b.pacing.SwitchOut)
	b.say(side, switchLine(b.rng, side, oldName, newName))
	b.logf(format, oldName, newName)
	team.ActiveIndex = to
	b.switched(side, from, to)
	b.animate(side, AnimSwitchIn)
	b.pause(b.pacing.SwitchIn)
	b.animate(side, AnimIdle)
	b.setTrainer(side, TrainerIdle)
}

// opponentHalf is the CPU's part of a round followed by the turn handoff.
func (b *Battle) opponentHalf() {
	b.notify("Opponent's Turn", NotifyTurn)
	b.pause(b.pacing.TurnHandoff)

	cpu, player := b.teams[SideCPU], b.teams[SidePlayer]
	cm, pm := cpu.Active(), player.Active()
	if !cm.Fainted() && !pm.Fainted() && b.phase.Is(PhaseInBattle) {
		fainted := false
		a, ok := b.decider.Choose(cm, pm, cpu.Mons, cpu.ActiveIndex, cpu.SwitchedLastTurn, b.rng)
		switch {
		case !ok:
			b.logf("%s has no moves left!", cm.Name())
		case a.Kind == ActSwitch:
			cpu.SwitchedLastTurn = true
			b.switchActive(SideCPU, a.Index, "CPU switched from %s to %s!", cm.Name(), cpu.Mons[a.Index].Name())
		case a.Kind == ActMove:
			cpu.SwitchedLastTurn = false
			fainted = b.strike(SideCPU, a.Move)
		}
		if !fainted && b.phase.Is(PhaseInBattle) {
			b.endOfTurn(SideCPU)
		}
	}

	if b.phase.Is(PhaseInBattle) || b.phase.Is(PhaseForcedSwitch) {
		b.turn++
		b.logf("--- Turn %d ---", b.turn)
		b.emit(EvTurn, map[string]any{"turn": b.turn})
		b.notify("Your Turn", NotifyTurn)
		b.playerTurn = true
	}
}
