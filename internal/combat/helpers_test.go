package combat

import (
	"testing"

	"portmon/internal/config"
)

// fixedRoller returns the same draw forever: f from Float64 and 0 from
// Intn, so the decision engine always takes the first of its pool.
type fixedRoller struct{ f float64 }

func (r fixedRoller) Float64() float64 { return r.f }
func (r fixedRoller) Intn(int) int     { return 0 }

func move(name, typ string, power int, acc float64, pp int) config.MoveDef {
	return config.MoveDef{Name: name, Type: typ, Power: power, Accuracy: acc, PP: pp}
}

func withEffect(m config.MoveDef, status string, chance float64) config.MoveDef {
	m.Effect = &config.EffectDef{Status: status, Chance: chance}
	return m
}

func mon(id int, name string, types []string, hp, atk, def int, moves ...config.MoveDef) config.MonDef {
	return config.MonDef{
		ID: id, Name: name, Types: types,
		Stats: config.StatBlock{HP: hp, Atk: atk, Def: def, Spd: 50},
		Moves: moves,
	}
}

func testData() *config.Data {
	return &config.Data{
		Types: &config.TypesConfig{Chart: map[string]map[string]float64{
			"Fire":  {"Grass": 2, "Water": 0.5},
			"Water": {"Fire": 2, "Grass": 0.5},
			"Grass": {"Water": 2, "Fire": 0.5},
			"Ghost": {"Normal": 0},
		}},
		Items: &config.ItemsConfig{Items: []config.ItemDef{
			{Key: "code_snippet", Name: "Code Snippet", Effect: config.ItemEffect{Type: config.ItemHeal, Amount: 20}, Quantity: 2},
			{Key: "debugger", Name: "Debugger", Effect: config.ItemEffect{Type: config.ItemCureStatus}, Quantity: 1},
		}},
		Roster: &config.RosterConfig{Mons: []config.MonDef{
			mon(1, "Blaze", []string{"Fire"}, 100, 115, 100,
				move("Ember", "Fire", 100, 1, 30), move("Tackle", "Normal", 100, 1, 30)),
			mon(2, "Leafy", []string{"Grass"}, 120, 100, 100,
				move("Vine", "Grass", 90, 1, 30), withEffect(move("Spore", "Grass", 0, 1, 10), "sleep", 1)),
			mon(3, "Splash", []string{"Water"}, 280, 100, 100,
				move("Bubble", "Water", 90, 1, 30), withEffect(move("Toxic", "Normal", 0, 1, 10), "poison", 1)),
			mon(4, "Cinder", []string{"Fire", "Normal"}, 90, 100, 90,
				move("Flare", "Fire", 80, 0.9, 30), move("Slam", "Normal", 70, 1, 30)),
			mon(5, "Sprout", []string{"Grass"}, 110, 90, 110,
				move("Leaf", "Grass", 80, 1, 30), withEffect(move("Sting", "Normal", 40, 1, 30), "burn", 0.3)),
			mon(6, "Drip", []string{"Water", "Ghost"}, 130, 95, 95,
				move("Wave", "Water", 85, 0.95, 30), move("Haunt", "Ghost", 60, 1, 30)),
		}},
	}
}

// newTestBattle starts an unpaced battle with the player fielding roster
// ids 1, 2, 3 and the CPU fielding cpuIDs.
func newTestBattle(t *testing.T, rng Roller, cpuIDs ...int) *Battle {
	t.Helper()
	data := testData()
	b := NewBattle(data, Options{Rng: rng})
	for _, id := range []int{1, 2, 3} {
		if !b.ToggleTeamMember(id) {
			t.Fatalf("toggle %d rejected", id)
		}
	}
	if !b.ConfirmTeam() {
		t.Fatal("confirm rejected")
	}
	if len(cpuIDs) > 0 {
		var entries []*config.MonDef
		for _, id := range cpuIDs {
			e, ok := data.Roster.ByID(id)
			if !ok {
				t.Fatalf("unknown roster id %d", id)
			}
			entries = append(entries, e)
		}
		b.teams[SideCPU] = NewTeam(MakeBattleReady(entries))
	}
	if !b.StartBattle() {
		t.Fatal("start rejected")
	}
	return b
}

func (b *Battle) locked(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn()
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}

func indexOf(lines []string, want string) int {
	for i, l := range lines {
		if l == want {
			return i
		}
	}
	return -1
}
