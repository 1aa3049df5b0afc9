package combat

// handleFaint runs after side's combatant at idx reached zero HP: it ends
// the match, hands the player a forced switch, or sends out the CPU's next
// combatant.
func (b *Battle) handleFaint(side Side, idx int) {
	team := b.teams[side]
	if !team.AnyLiving() {
		b.endMatch(side.Opponent())
		return
	}
	if side == SidePlayer {
		if err := b.phase.Fire(evFaint); err != nil {
			return
		}
		b.playerTurn = true
		b.notify("Choose your next Project!", NotifyTurn)
		return
	}
	next := team.FirstLiving()
	oldName, newName := team.Mons[idx].Name(), team.Mons[next].Name()
	b.setTrainer(SideCPU, TrainerCommanding)
	b.pause(b.pacing.Command)
	b.say(SideCPU, switchLine(b.rng, SideCPU, oldName, newName))
	b.logf("CPU sent out %s!", newName)
	b.pause(b.pacing.SwitchOut)
	b.animate(SideCPU, AnimSwitchIn)
	team.ActiveIndex = next
	b.switched(SideCPU, idx, next)
	b.pause(b.pacing.SwitchIn)
	b.animate(SideCPU, AnimIdle)
	b.setTrainer(SideCPU, TrainerIdle)
	b.playerTurn = true
}

// endMatch records winner and closes the session to further input.
func (b *Battle) endMatch(winner Side) {
	b.winner = winner
	b.playerTurn = false
	b.emit(EvWinner, map[string]any{"winner": string(winner)})
	b.setTrainer(winner, TrainerWin)
	b.setTrainer(winner.Opponent(), TrainerLose)
	b.pause(b.pacing.GameOver)
	_ = b.phase.Fire(evFinish)
	b.setAutoLocked(false)
}
