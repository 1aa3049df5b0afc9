package combat

import (
	"encoding/json"
	"math/rand"

	"portmon/internal/config"
	"portmon/internal/util"
)

const DefaultMaxTurns = 200

type SimResult struct {
	Win         bool        `json:"win"`
	Winner      Side        `json:"winner,omitempty"`
	Turns       int         `json:"turns"`
	PlayerTeam  []string    `json:"player_team"`
	CPUTeam     []string    `json:"cpu_team"`
	PlayerStats BattleStats `json:"player_stats"`
	CPUStats    BattleStats `json:"cpu_stats"`
	Events      []Event     `json:"events,omitempty"`
}

type Env struct {
	Rng      *rand.Rand
	MaxTurns int
}

// RunSingle plays one unpaced battle with the decision engine driving both
// sides. picks selects the player team by roster id; when empty a random
// team is drawn. The match stops at battle over, at MaxTurns, or when the
// player side has nothing legal to do.
func RunSingle(env *Env, data *config.Data, picks []int, record bool) SimResult {
	maxTurns := env.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	var rng Roller = util.New(0)
	if env.Rng != nil {
		rng = env.Rng
	}
	b := NewBattle(data, Options{Rng: rng})
	var events []Event
	if record {
		b.Subscribe(func(ev Event) { events = append(events, ev) })
	}

	if len(picks) == 0 {
		b.RandomTeam()
	}
	for _, id := range picks {
		b.ToggleTeamMember(id)
	}
	var res SimResult
	if !b.ConfirmTeam() || !b.StartBattle() {
		return res
	}
	for {
		if b.Phase() == PhaseBattleOver || b.turnCount() > maxTurns || !b.Step() {
			break
		}
	}

	s := b.Snapshot()
	res.Winner = s.Winner
	res.Win = s.Winner == SidePlayer
	res.Turns = s.Turn
	res.PlayerStats = s.Player.Stats
	res.CPUStats = s.CPU.Stats
	for _, m := range s.Player.Team {
		res.PlayerTeam = append(res.PlayerTeam, m.Name)
	}
	for _, m := range s.CPU.Team {
		res.CPUTeam = append(res.CPUTeam, m.Name)
	}
	res.Events = events
	return res
}

func (b *Battle) turnCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.turn
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
