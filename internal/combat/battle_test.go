package combat

import (
	"fmt"
	"reflect"
	"testing"
)

func TestTeamBuildingFlow(t *testing.T) {
	b := NewBattle(testData(), Options{Rng: fixedRoller{0}})
	for _, id := range []int{1, 2, 3} {
		if !b.ToggleTeamMember(id) {
			t.Fatalf("toggle %d rejected", id)
		}
	}
	if b.ToggleTeamMember(4) {
		t.Fatal("fourth pick accepted")
	}
	if !contains(b.Snapshot().Log, "Your team is already full!") {
		t.Fatal("full team not logged")
	}
	b.ToggleTeamMember(2)
	if got := b.Snapshot().Picks; !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("picks = %v", got)
	}
	if b.ConfirmTeam() || b.Phase() != PhaseTeamBuilding {
		t.Fatal("short team confirmed")
	}
	if b.ToggleTeamMember(99) {
		t.Fatal("unknown id accepted")
	}
	if !b.RandomTeam() || len(b.Snapshot().Picks) != 3 {
		t.Fatal("random team not drawn")
	}
	if !b.ConfirmTeam() || b.Phase() != PhasePreview {
		t.Fatal("confirm failed")
	}
	if b.ToggleTeamMember(1) || b.ClearTeam() {
		t.Fatal("team edited after confirm")
	}

	s := b.Snapshot()
	if len(s.Player.Team) != 3 || len(s.CPU.Team) != 3 {
		t.Fatalf("team sizes %d/%d", len(s.Player.Team), len(s.CPU.Team))
	}
	mine := map[int]bool{}
	for _, m := range s.Player.Team {
		mine[m.ID] = true
	}
	for _, m := range s.CPU.Team {
		if mine[m.ID] {
			t.Fatalf("CPU fielded the player's pick %s", m.Name)
		}
	}

	if !b.StartBattle() || b.Phase() != PhaseInBattle {
		t.Fatal("start failed")
	}
	s = b.Snapshot()
	want := fmt.Sprintf("%s vs %s!", s.Player.Team[0].Name, s.CPU.Team[0].Name)
	if len(s.Log) != 2 || s.Log[0] != "--- Turn 1 ---" || s.Log[1] != want {
		t.Fatalf("log = %v", s.Log)
	}
	if !s.PlayerTurn || s.Turn != 1 || s.Notice == nil || s.Notice.Message != "Your Turn" {
		t.Fatalf("snapshot = %+v", s)
	}
	if b.StartBattle() {
		t.Fatal("second start accepted")
	}
}

func TestRoundOrdering(t *testing.T) {
	b := newTestBattle(t, fixedRoller{0}, 3)
	var seen []string
	b.Subscribe(func(ev Event) {
		switch ev.Type {
		case EvLogLine:
			seen = append(seen, ev.Payload["text"].(string))
		case EvNotify:
			seen = append(seen, "notify:"+ev.Payload["message"].(string))
		}
	})
	if !b.SelectMove("Tackle") {
		t.Fatal("move rejected")
	}
	order := []string{"Blaze used Tackle!", "notify:Opponent's Turn", "Splash used Bubble!", "--- Turn 2 ---", "notify:Your Turn"}
	last := -1
	for _, want := range order {
		i := indexOf(seen, want)
		if i <= last {
			t.Fatalf("%q out of order in %v", want, seen)
		}
		last = i
	}
	s := b.Snapshot()
	if s.Turn != 2 || !s.PlayerTurn || s.Processing {
		t.Fatalf("turn=%d playerTurn=%v processing=%v", s.Turn, s.PlayerTurn, s.Processing)
	}
	if s.CPU.Team[0].HP != 280-21 || s.Player.Team[0].HP != 100-34 {
		t.Fatalf("hp player=%d cpu=%d", s.Player.Team[0].HP, s.CPU.Team[0].HP)
	}
}

func TestPlayerFaintForcesSwitch(t *testing.T) {
	b := newTestBattle(t, fixedRoller{0}, 3)
	b.teams[SidePlayer].Active().HP = 1
	if !b.SelectMove("Tackle") {
		t.Fatal("move rejected")
	}
	s := b.Snapshot()
	if s.Phase != PhaseForcedSwitch || !s.PlayerTurn || s.Turn != 2 {
		t.Fatalf("phase=%s playerTurn=%v turn=%d", s.Phase, s.PlayerTurn, s.Turn)
	}
	if b.SelectMove("Ember") || b.UseItem("code_snippet", 1) {
		t.Fatal("non-switch input accepted during forced switch")
	}
	if b.SelectSwitch(0) {
		t.Fatal("switched to the fainted combatant")
	}
	cpuHP := s.CPU.Team[0].HP
	if !b.SelectSwitch(1) {
		t.Fatal("replacement rejected")
	}
	s = b.Snapshot()
	if s.Phase != PhaseInBattle || s.Player.Active != 1 || s.Turn != 2 || !s.PlayerTurn {
		t.Fatalf("after replacement: %+v", s)
	}
	if s.CPU.Team[0].HP != cpuHP {
		t.Fatal("CPU acted during the replacement")
	}
}

func TestCPUFaintSendsNextInOrder(t *testing.T) {
	b := newTestBattle(t, fixedRoller{0}, 3, 5, 6)
	b.teams[SideCPU].Active().HP = 1
	if !b.SelectMove("Tackle") {
		t.Fatal("move rejected")
	}
	s := b.Snapshot()
	if s.CPU.Active != 1 || s.Phase != PhaseInBattle || !s.PlayerTurn || s.Turn != 1 {
		t.Fatalf("cpu active=%d phase=%s turn=%d", s.CPU.Active, s.Phase, s.Turn)
	}
	if !contains(s.Log, "CPU sent out Sprout!") {
		t.Fatalf("log = %v", s.Log)
	}
}

func TestLastFaintEndsMatch(t *testing.T) {
	b := newTestBattle(t, fixedRoller{0}, 3)
	b.teams[SideCPU].Active().HP = 1
	if !b.SelectMove("Tackle") {
		t.Fatal("move rejected")
	}
	s := b.Snapshot()
	if s.Winner != SidePlayer || s.Phase != PhaseBattleOver || s.PlayerTurn {
		t.Fatalf("winner=%q phase=%s playerTurn=%v", s.Winner, s.Phase, s.PlayerTurn)
	}
	if s.Player.Trainer != TrainerWin || s.CPU.Trainer != TrainerLose {
		t.Fatalf("trainers %s/%s", s.Player.Trainer, s.CPU.Trainer)
	}
	if b.SelectMove("Tackle") || b.SelectSwitch(1) || b.UseItem("code_snippet", 0) || b.Run() || b.Step() {
		t.Fatal("input accepted after the match ended")
	}
	if got := b.Snapshot(); got.Turn != 1 || len(got.Log) != len(s.Log) {
		t.Fatal("state changed after the match ended")
	}
}

func TestZeroPPRejected(t *testing.T) {
	b := newTestBattle(t, fixedRoller{0}, 3)
	player := b.teams[SidePlayer].Active()
	player.Move("Tackle").PP = 0
	if b.SelectMove("Tackle") {
		t.Fatal("empty move accepted")
	}
	s := b.Snapshot()
	if !contains(s.Log, "There's no PP left for Tackle!") || !s.PlayerTurn || s.Processing {
		t.Fatalf("snapshot = %+v", s)
	}
	if b.SelectMove("Nope") {
		t.Fatal("unknown move accepted")
	}

	player.ApplyStatus(StatusStun)
	if !b.SelectMove("Tackle") {
		t.Fatal("stunned combatant could not pass its turn")
	}
	if player.Move("Tackle").PP != 0 {
		t.Fatal("stunned turn charged a use")
	}
}

func TestInputGatedWhileProcessing(t *testing.T) {
	b := newTestBattle(t, fixedRoller{0}, 3)
	b.locked(func() { b.processing = true })
	if b.SelectMove("Tackle") || b.SelectSwitch(1) || b.Run() {
		t.Fatal("input accepted mid-round")
	}
	b.locked(func() {
		b.processing = false
		b.playerTurn = false
	})
	if b.SelectMove("Tackle") {
		t.Fatal("input accepted outside the player's turn")
	}
}

func TestSwitchRound(t *testing.T) {
	b := newTestBattle(t, fixedRoller{0}, 3)
	if b.SelectSwitch(0) {
		t.Fatal("switch to the active combatant accepted")
	}
	if !contains(b.Snapshot().Log, "Blaze is already in battle!") {
		t.Fatal("rejection not logged")
	}
	if !b.SelectSwitch(1) {
		t.Fatal("switch rejected")
	}
	s := b.Snapshot()
	if s.Player.Active != 1 || s.Turn != 2 || !s.Player.SwitchedLastTurn {
		t.Fatalf("active=%d turn=%d switched=%v", s.Player.Active, s.Turn, s.Player.SwitchedLastTurn)
	}
	if !contains(s.Log, "You switched from Blaze to Leafy!") {
		t.Fatalf("log = %v", s.Log)
	}
	if s.Player.Team[1].HP == s.Player.Team[1].MaxHP && s.Player.Team[1].Status == StatusNone {
		t.Fatal("CPU did not act on the incoming combatant")
	}
}

func TestItemUse(t *testing.T) {
	b := newTestBattle(t, fixedRoller{0}, 3)
	if b.UseItem("code_snippet", 0) {
		t.Fatal("heal at full HP accepted")
	}
	if b.UseItem("debugger", 0) {
		t.Fatal("cure without status accepted")
	}
	if b.UseItem("nope", 0) || b.UseItem("code_snippet", 7) {
		t.Fatal("bad item or target accepted")
	}
	log := b.Snapshot().Log
	if !contains(log, "Blaze's HP is already full!") || !contains(log, "Blaze has no status condition!") {
		t.Fatalf("log = %v", log)
	}

	b.teams[SidePlayer].Mons[1].HP = 10
	if !b.UseItem("code_snippet", 1) {
		t.Fatal("heal rejected")
	}
	s := b.Snapshot()
	if s.Player.Team[1].HP != 30 || s.Inventory[0].Quantity != 1 || s.Turn != 2 {
		t.Fatalf("hp=%d qty=%d turn=%d", s.Player.Team[1].HP, s.Inventory[0].Quantity, s.Turn)
	}
	if !contains(s.Log, "Used Code Snippet on Leafy.") {
		t.Fatalf("log = %v", s.Log)
	}

	b.teams[SidePlayer].Mons[2].HP = 0
	if b.UseItem("code_snippet", 2) {
		t.Fatal("item used on a fainted combatant")
	}
	b.inv.Slot("code_snippet").Quantity = 0
	if b.UseItem("code_snippet", 1) {
		t.Fatal("empty item accepted")
	}

	b.teams[SidePlayer].Mons[1].ApplyStatus(StatusBurn)
	if !b.UseItem("debugger", 1) {
		t.Fatal("cure rejected")
	}
	if st := b.teams[SidePlayer].Mons[1].Status; st != StatusNone {
		t.Fatalf("status still %q", st)
	}
}

func TestRunEndsMatch(t *testing.T) {
	b := newTestBattle(t, fixedRoller{0}, 3)
	if !b.Run() {
		t.Fatal("run rejected")
	}
	s := b.Snapshot()
	if s.Winner != SideCPU || s.Phase != PhaseBattleOver {
		t.Fatalf("winner=%q phase=%s", s.Winner, s.Phase)
	}
	if !contains(s.Log, "You ran away from the battle...") {
		t.Fatal("run not logged")
	}
}

func TestResetIsIdempotent(t *testing.T) {
	b := newTestBattle(t, fixedRoller{0}, 3, 5, 6)
	b.SelectMove("Tackle")
	b.SetAutoBattle(true)
	b.Reset()
	first := b.Snapshot()
	if first.Phase != PhaseTeamBuilding || len(first.Picks) != 0 || first.Turn != 1 || first.AutoBattle {
		t.Fatalf("after reset: %+v", first)
	}
	if !reflect.DeepEqual(first.Log, []string{"Select your team to begin!"}) {
		t.Fatalf("log = %v", first.Log)
	}
	if first.Inventory[0].Quantity != 2 || first.Inventory[1].Quantity != 1 {
		t.Fatalf("inventory = %+v", first.Inventory)
	}
	if first.Winner != "" || first.Player.Stats != (BattleStats{}) || len(first.Player.Team) != 0 {
		t.Fatalf("leftover battle state: %+v", first)
	}
	b.locked(func() {
		if b.auto.timer != nil {
			t.Fatal("auto-battle still scheduled")
		}
	})
	b.Reset()
	if second := b.Snapshot(); !reflect.DeepEqual(first, second) {
		t.Fatalf("second reset differs:\n%+v\n%+v", first, second)
	}
}

func TestDispatchRunsAsync(t *testing.T) {
	b := newTestBattle(t, fixedRoller{0}, 3)
	ok, done := b.Dispatch(SwitchAction(1))
	if !ok {
		t.Fatal("dispatch rejected")
	}
	<-done
	if s := b.Snapshot(); s.Turn != 2 || s.Processing {
		t.Fatalf("turn=%d processing=%v", s.Turn, s.Processing)
	}
	ok, done = b.Dispatch(SwitchAction(1))
	<-done
	if ok {
		t.Fatal("switch to the active combatant dispatched")
	}
}

func TestUnsubscribe(t *testing.T) {
	b := newTestBattle(t, fixedRoller{0}, 3)
	n := 0
	stop := b.Subscribe(func(Event) { n++ })
	b.SetAutoBattle(true)
	b.SetAutoBattle(false)
	stop()
	seen := n
	b.SelectMove("Tackle")
	if seen == 0 || n != seen {
		t.Fatalf("events before=%d after=%d", seen, n)
	}
}
