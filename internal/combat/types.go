package combat

// Event is one occurrence on the stream a presentation layer consumes.
// Events carry ordering, not timing.
type Event struct {
	Turn    int            `json:"turn"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EvLogLine   = "LogLine"
	EvNotify    = "Notify"
	EvAnimation = "Animation"
	EvDialogue  = "Dialogue"
	EvTrainer   = "Trainer"
	EvPhase     = "PhaseEnter"
	EvHP        = "HPChanged"
	EvStatus    = "StatusChanged"
	EvSwitch    = "Switch"
	EvTurn      = "TurnStart"
	EvWinner    = "Winner"
	EvAuto      = "AutoBattle"
)

type Side string

const (
	SidePlayer Side = "player"
	SideCPU    Side = "cpu"
)

func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideCPU
	}
	return SidePlayer
}

type StatusKind string

const (
	StatusNone   StatusKind = ""
	StatusBurn   StatusKind = "burn"
	StatusPoison StatusKind = "poison"
	StatusSleep  StatusKind = "sleep"
	StatusStun   StatusKind = "stun"
)

// Duration is the number of turns a freshly applied status lasts.
func (s StatusKind) Duration() int {
	switch s {
	case StatusSleep, StatusStun:
		return 3
	case StatusBurn, StatusPoison:
		return 4
	}
	return 0
}

// Immobilizing statuses are spent at action time instead of end of turn.
func (s StatusKind) Immobilizing() bool { return s == StatusSleep || s == StatusStun }

func (s StatusKind) verb() string {
	switch s {
	case StatusBurn:
		return "burned"
	case StatusPoison:
		return "poisoned"
	case StatusSleep:
		return "asleep"
	case StatusStun:
		return "stunned"
	}
	return ""
}

type NotifyKind string

const (
	NotifyInfo          NotifyKind = "info"
	NotifyTurn          NotifyKind = "turn"
	NotifyEffectiveness NotifyKind = "effectiveness"
	NotifyCritical      NotifyKind = "critical"
	NotifyStatus        NotifyKind = "status"
	NotifyMiss          NotifyKind = "miss"
)

type AnimState string

const (
	AnimIdle      AnimState = "idle"
	AnimAttack    AnimState = "attack"
	AnimHit       AnimState = "hit"
	AnimFaint     AnimState = "faint"
	AnimSwitchIn  AnimState = "switchIn"
	AnimSwitchOut AnimState = "switchOut"
)

type TrainerState string

const (
	TrainerIdle       TrainerState = "idle"
	TrainerCommanding TrainerState = "commanding"
	TrainerWin        TrainerState = "win"
	TrainerLose       TrainerState = "lose"
)

// Roller is the random source the engine draws from. *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
	Intn(n int) int
}
