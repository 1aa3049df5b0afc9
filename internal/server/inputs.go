package server

import (
	"errors"
	"fmt"

	"portmon/internal/combat"
)

var errUnknownInput = errors.New("unknown input")

// inputBody is the union of every input's JSON body; each input reads
// only its own fields.
type inputBody struct {
	ID      int    `json:"id"`
	Move    string `json:"move"`
	Index   int    `json:"index"`
	Item    string `json:"item"`
	Target  int    `json:"target"`
	Enabled bool   `json:"enabled"`
}

// apply feeds one input to the battle. Round-resolving inputs are
// dispatched and resolve in the background.
func apply(b *combat.Battle, op string, in inputBody) (bool, error) {
	switch op {
	case "team/toggle":
		return b.ToggleTeamMember(in.ID), nil
	case "team/clear":
		return b.ClearTeam(), nil
	case "team/random":
		return b.RandomTeam(), nil
	case "team/confirm":
		return b.ConfirmTeam(), nil
	case "start":
		return b.StartBattle(), nil
	case "move":
		a, ok := b.MoveByName(in.Move)
		if !ok {
			return false, nil
		}
		return dispatch(b, a), nil
	case "switch":
		return dispatch(b, combat.SwitchAction(in.Index)), nil
	case "item":
		return dispatch(b, combat.ItemAction(in.Item, in.Target)), nil
	case "run":
		return dispatch(b, combat.RunAction()), nil
	case "reset":
		b.Reset()
		return true, nil
	case "auto":
		b.SetAutoBattle(in.Enabled)
		return true, nil
	}
	return false, fmt.Errorf("%w: %q", errUnknownInput, op)
}

func dispatch(b *combat.Battle, a combat.Action) bool {
	ok, _ := b.Dispatch(a)
	return ok
}
