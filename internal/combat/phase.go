package combat

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

type Phase string

const (
	PhaseTeamBuilding Phase = "team_building"
	PhasePreview      Phase = "preview"
	PhaseInBattle     Phase = "in_battle"
	PhaseForcedSwitch Phase = "forced_switch"
	PhaseBattleOver   Phase = "battle_over"
)

const (
	evConfirm = "confirm"
	evStart   = "start"
	evFaint   = "faint"
	evReplace = "replace"
	evFinish  = "finish"
	evReset   = "reset"
)

// PhaseMachine guards the session phase. Transitions outside the table
// are refused, so a stray input can never skip a phase.
type PhaseMachine struct {
	fsm *fsm.FSM
}

// NewPhaseMachine starts in team building. onEnter, when set, is called
// with every phase entered, including re-entry through reset.
func NewPhaseMachine(onEnter func(from, to Phase)) *PhaseMachine {
	all := []string{
		string(PhaseTeamBuilding), string(PhasePreview), string(PhaseInBattle),
		string(PhaseForcedSwitch), string(PhaseBattleOver),
	}
	callbacks := fsm.Callbacks{}
	if onEnter != nil {
		callbacks["enter_state"] = func(_ context.Context, e *fsm.Event) {
			onEnter(Phase(e.Src), Phase(e.Dst))
		}
	}
	f := fsm.NewFSM(
		string(PhaseTeamBuilding),
		fsm.Events{
			{Name: evConfirm, Src: []string{string(PhaseTeamBuilding)}, Dst: string(PhasePreview)},
			{Name: evStart, Src: []string{string(PhasePreview)}, Dst: string(PhaseInBattle)},
			{Name: evFaint, Src: []string{string(PhaseInBattle)}, Dst: string(PhaseForcedSwitch)},
			{Name: evReplace, Src: []string{string(PhaseForcedSwitch)}, Dst: string(PhaseInBattle)},
			{Name: evFinish, Src: []string{string(PhaseInBattle), string(PhaseForcedSwitch)}, Dst: string(PhaseBattleOver)},
			{Name: evReset, Src: all, Dst: string(PhaseTeamBuilding)},
		},
		callbacks,
	)
	return &PhaseMachine{fsm: f}
}

func (p *PhaseMachine) Current() Phase { return Phase(p.fsm.Current()) }

func (p *PhaseMachine) Is(ph Phase) bool { return p.fsm.Is(string(ph)) }

func (p *PhaseMachine) Can(event string) bool { return p.fsm.Can(event) }

// Fire applies event. Firing reset while already in team building is not
// an error.
func (p *PhaseMachine) Fire(event string) error {
	err := p.fsm.Event(context.Background(), event)
	var noop fsm.NoTransitionError
	if errors.As(err, &noop) {
		return nil
	}
	return err
}
