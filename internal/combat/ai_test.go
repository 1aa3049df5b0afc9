package combat

import (
	"math"
	"testing"

	"portmon/internal/config"
	"portmon/internal/util"
)

type panicRoller struct{}

func (panicRoller) Float64() float64 { panic("unexpected draw") }
func (panicRoller) Intn(int) int     { panic("unexpected draw") }

type countingRoller struct{ lastN int }

func (r *countingRoller) Float64() float64 { return 0 }
func (r *countingRoller) Intn(n int) int   { r.lastN = n; return 0 }

func combatants(t *testing.T, data *config.Data, ids ...int) []*Combatant {
	t.Helper()
	var entries []*config.MonDef
	for _, id := range ids {
		e, ok := data.Roster.ByID(id)
		if !ok {
			t.Fatalf("unknown id %d", id)
		}
		entries = append(entries, e)
	}
	return MakeBattleReady(entries)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestScoreMove(t *testing.T) {
	data := testData()
	d := NewDecider(NewTypeChart(data.Types))
	mons := combatants(t, data, 1, 2, 3)
	blaze, leafy, splash := mons[0], mons[1], mons[2]

	cases := []struct {
		name     string
		move     *Move
		atk, def *Combatant
		want     float64
	}{
		{"stab super effective finisher", blaze.Move("Ember"), blaze, leafy, 100 * 1.15 * 1.5 * 2 * 1.5},
		{"neutral no stab", blaze.Move("Tackle"), blaze, leafy, 115},
		{"status only", leafy.Move("Spore"), leafy, splash, 45},
		{"resisted stab", splash.Move("Bubble"), splash, leafy, 90 * 1.5 * 0.5},
	}
	for _, c := range cases {
		if got := d.ScoreMove(c.move, c.atk, c.def); !near(got, c.want) {
			t.Errorf("%s: got %v want %v", c.name, got, c.want)
		}
	}

	splash.ApplyStatus(StatusBurn)
	if got := d.ScoreMove(leafy.Move("Spore"), leafy, splash); got != 0 {
		t.Errorf("status move against afflicted target scored %v", got)
	}
	acc := blaze.Move("Tackle")
	acc.Def.Accuracy = 0.5
	if got := d.ScoreMove(acc, blaze, leafy); !near(got, 57.5) {
		t.Errorf("accuracy not applied: %v", got)
	}
}

func TestScoreSwitch(t *testing.T) {
	data := testData()
	d := NewDecider(NewTypeChart(data.Types))
	mons := combatants(t, data, 1, 2, 3)
	blaze, leafy, splash := mons[0], mons[1], mons[2]

	want := 60 + 90*1.5*2*1.5
	if got := d.ScoreSwitch(splash, leafy, blaze); !near(got, want) {
		t.Fatalf("favourable switch = %v want %v", got, want)
	}
	leafy.HP = 20
	if got := d.ScoreSwitch(splash, leafy, blaze); !near(got, want+50) {
		t.Fatalf("escape bonus missing: %v", got)
	}
	splash.HP = 140
	if got := d.ScoreSwitch(splash, leafy, blaze); !near(got, want*0.5+50) {
		t.Fatalf("hp scaling missing: %v", got)
	}
}

func TestChooseOnlyLegalActions(t *testing.T) {
	for seed := int64(1); seed <= 300; seed++ {
		rng := util.New(seed)
		data := testData()
		d := NewDecider(NewTypeChart(data.Types))
		team := combatants(t, data, 1, 2, 3)
		foe := combatants(t, data, 4)[0]
		active := rng.Intn(3)
		for i, c := range team {
			for _, m := range c.Moves {
				if rng.Intn(2) == 0 {
					m.PP = 0
				}
			}
			if i != active && rng.Intn(3) == 0 {
				c.HP = 0
			}
		}
		switched := seed%2 == 0
		a, ok := d.Choose(team[active], foe, team, active, switched, rng)
		if !ok {
			if len(team[active].UsableMoves()) > 0 {
				t.Fatalf("seed %d: no action despite usable moves", seed)
			}
			continue
		}
		switch a.Kind {
		case ActMove:
			if a.Move.PP <= 0 || team[active].Move(a.Move.Name()) != a.Move {
				t.Fatalf("seed %d: picked %s", seed, a)
			}
		case ActSwitch:
			if switched || a.Index == active || team[a.Index].Fainted() {
				t.Fatalf("seed %d: picked %s (active %d, switched %v)", seed, a, active, switched)
			}
		default:
			t.Fatalf("seed %d: unexpected %s", seed, a)
		}
	}
}

func TestChooseNothingLegal(t *testing.T) {
	data := testData()
	d := NewDecider(NewTypeChart(data.Types))
	team := combatants(t, data, 1, 2, 3)
	for _, m := range team[0].Moves {
		m.PP = 0
	}
	if _, ok := d.Choose(team[0], team[1], team, 0, true, panicRoller{}); ok {
		t.Fatal("action returned with no usable moves and switching locked")
	}
	team[1].HP, team[2].HP = 0, 0
	if _, ok := d.Choose(team[0], team[1], team, 0, false, panicRoller{}); ok {
		t.Fatal("action returned with no usable moves and no living teammates")
	}
}

func TestChooseNonPositiveTakesTop(t *testing.T) {
	data := testData()
	d := NewDecider(NewTypeChart(data.Types))
	ghost := combatants(t, data, 6)[0]
	ghost.Moves = []*Move{ghost.Move("Haunt")}
	normal := NewCombatant(&config.MonDef{ID: 9, Name: "Plain", Types: []string{"Normal"}, Stats: config.StatBlock{HP: 50, Atk: 50, Def: 50}})
	a, ok := d.Choose(ghost, normal, []*Combatant{ghost}, 0, false, panicRoller{})
	if !ok || a.Kind != ActMove || a.Move.Name() != "Haunt" {
		t.Fatalf("got %v %v", a, ok)
	}
}

func TestChoosePoolFallsBackToTopFour(t *testing.T) {
	data := testData()
	d := NewDecider(NewTypeChart(data.Types))
	team := combatants(t, data, 1, 2, 3)
	foe := combatants(t, data, 2)[0]
	r := &countingRoller{}
	if _, ok := d.Choose(team[0], foe, team, 0, false, r); !ok || r.lastN != 4 {
		t.Fatalf("pool size %d", r.lastN)
	}
	if _, ok := d.Choose(team[0], foe, team, 0, true, r); !ok || r.lastN != 2 {
		t.Fatalf("pool size %d with switching locked", r.lastN)
	}
}

func TestBestReplacement(t *testing.T) {
	data := testData()
	d := NewDecider(NewTypeChart(data.Types))
	team := NewTeam(combatants(t, data, 1, 2, 3))
	team.Mons[0].HP = 0
	foe := combatants(t, data, 2)[0]
	idx, ok := d.BestReplacement(team, foe)
	if !ok || idx != 1 {
		t.Fatalf("replacement %d %v", idx, ok)
	}
	team.Mons[1].HP, team.Mons[2].HP = 0, 0
	if _, ok := d.BestReplacement(team, foe); ok {
		t.Fatal("replacement found on a wiped team")
	}
}
