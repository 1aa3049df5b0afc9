package combat

import "fmt"

type ActionKind int

const (
	ActNone ActionKind = iota
	ActMove
	ActSwitch
	ActItem
	ActRun
)

func (k ActionKind) String() string {
	switch k {
	case ActMove:
		return "move"
	case ActSwitch:
		return "switch"
	case ActItem:
		return "item"
	case ActRun:
		return "run"
	}
	return "none"
}

// Action is what one side does with its turn. Only the fields of its Kind
// are meaningful: Move for ActMove, Index for ActSwitch, Item and Index
// (the target slot) for ActItem. ActRun carries nothing.
type Action struct {
	Kind  ActionKind
	Move  *Move
	Index int
	Item  string
	Score float64
}

func MoveAction(m *Move) Action { return Action{Kind: ActMove, Move: m} }
func SwitchAction(i int) Action { return Action{Kind: ActSwitch, Index: i} }
func ItemAction(key string, target int) Action {
	return Action{Kind: ActItem, Item: key, Index: target}
}

func RunAction() Action { return Action{Kind: ActRun} }

func (a Action) String() string {
	switch a.Kind {
	case ActMove:
		return fmt.Sprintf("move(%s)", a.Move.Name())
	case ActSwitch:
		return fmt.Sprintf("switch(%d)", a.Index)
	case ActItem:
		return fmt.Sprintf("item(%s->%d)", a.Item, a.Index)
	case ActRun:
		return "run"
	}
	return "none"
}
