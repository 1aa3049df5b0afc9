package combat

import (
	"time"

	"portmon/internal/logging"
)

// autoBattler schedules the player's next action when auto-battle is on.
// Every field is guarded by the battle's lock; gen invalidates timers that
// were stopped too late to keep their callback from running.
type autoBattler struct {
	b     *Battle
	delay time.Duration
	timer *time.Timer
	gen   int
}

func (a *autoBattler) arm() {
	a.cancel()
	b := a.b
	if !b.autoOn || !b.acceptingInput() {
		return
	}
	if !b.phase.Is(PhaseInBattle) && !b.phase.Is(PhaseForcedSwitch) {
		return
	}
	gen := a.gen
	a.timer = time.AfterFunc(a.delay, func() { a.fire(gen) })
}

func (a *autoBattler) cancel() {
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *autoBattler) fire(gen int) {
	b := a.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != a.gen {
		return
	}
	a.timer = nil
	if !b.autoStep() {
		logging.Info("auto-battle found no legal action", logging.Fields{
			"battle": b.id, "phase": string(b.phase.Current()), "turn": b.turn,
		})
	}
}

// autoDecide picks the player's action the same way the CPU picks its own.
// In a forced switch it takes the best-scoring replacement outright.
func (b *Battle) autoDecide() (Action, bool) {
	player, cpu := b.teams[SidePlayer], b.teams[SideCPU]
	switch b.phase.Current() {
	case PhaseForcedSwitch:
		idx, ok := b.decider.BestReplacement(player, cpu.Active())
		return SwitchAction(idx), ok
	case PhaseInBattle:
		return b.decider.Choose(player.Active(), cpu.Active(), player.Mons, player.ActiveIndex, player.SwitchedLastTurn, b.rng)
	}
	return Action{}, false
}

func (b *Battle) autoStep() bool {
	act, ok := b.autoDecide()
	if !ok {
		return false
	}
	run, ok := b.prepare(act)
	if !ok {
		return false
	}
	run()
	return true
}

// Step plays one player action chosen by the decision engine, whether or
// not auto-battle is on. It reports false when there was nothing to do.
func (b *Battle) Step() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.autoStep()
}
