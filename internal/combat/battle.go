package combat

import (
	"sync"
	"time"

	"portmon/internal/config"
	"portmon/internal/util"
)

type Options struct {
	Rng       Roller
	Pacing    Pacing
	Sleep     func(time.Duration)
	TeamSize  int
	AutoDelay time.Duration
	ID        string
}

type listener struct {
	id int
	fn func(Event)
}

// Battle is one player-vs-CPU session. Every exported method takes the
// session lock; a round in progress gives the lock up only while pausing,
// and the processing flag keeps new input out until the round is done.
type Battle struct {
	mu   sync.Mutex
	idle *sync.Cond

	id       string
	data     *config.Data
	chart    *TypeChart
	decider  *Decider
	rng      Roller
	pacing   Pacing
	sleep    func(time.Duration)
	teamSize int

	phase      *PhaseMachine
	turn       int
	playerTurn bool
	processing bool
	winner     Side

	picks    []*config.MonDef
	teams    map[Side]*Team
	stats    map[Side]*BattleStats
	inv      *Inventory
	log      []string
	notice   *Notice
	anim     map[Side]AnimState
	trainer  map[Side]TrainerState
	dialogue map[Side]string

	autoOn bool
	auto   *autoBattler

	listeners  []listener
	listenerID int
}

func NewBattle(data *config.Data, opts Options) *Battle {
	if opts.Rng == nil {
		opts.Rng = util.New(0)
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.TeamSize <= 0 {
		opts.TeamSize = config.DefaultTeamSize
	}
	if opts.AutoDelay <= 0 {
		opts.AutoDelay = config.DefaultAutoBattleDelay * time.Millisecond
	}
	chart := NewTypeChart(data.Types)
	b := &Battle{
		id:       opts.ID,
		data:     data,
		chart:    chart,
		decider:  NewDecider(chart),
		rng:      opts.Rng,
		pacing:   opts.Pacing,
		sleep:    opts.Sleep,
		teamSize: opts.TeamSize,
	}
	b.idle = sync.NewCond(&b.mu)
	b.auto = &autoBattler{b: b, delay: opts.AutoDelay}
	b.phase = NewPhaseMachine(func(from, to Phase) {
		b.emit(EvPhase, map[string]any{"from": string(from), "to": string(to)})
	})
	b.resetLocked()
	return b
}

func (b *Battle) ID() string { return b.id }

// Subscribe registers fn for every event the session emits from now on.
// fn runs with the session locked and must not call back into the Battle.
func (b *Battle) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listenerID++
	id := b.listenerID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

func (b *Battle) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase.Current()
}

// pause gives up the session lock for d. Callers hold the lock.
func (b *Battle) pause(d time.Duration) {
	if d <= 0 {
		return
	}
	b.mu.Unlock()
	b.sleep(d)
	b.mu.Lock()
}

func (b *Battle) acceptingInput() bool { return b.playerTurn && !b.processing }

// ToggleTeamMember adds the roster entry to the player's picks, or drops
// it if already picked.
func (b *Battle) ToggleTeamMember(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.phase.Is(PhaseTeamBuilding) {
		return false
	}
	entry, ok := b.data.Roster.ByID(id)
	if !ok {
		return false
	}
	for i, p := range b.picks {
		if p.ID == id {
			b.picks = append(b.picks[:i], b.picks[i+1:]...)
			return true
		}
	}
	if len(b.picks) >= b.teamSize {
		b.logf("Your team is already full!")
		return false
	}
	b.picks = append(b.picks, entry)
	return true
}

func (b *Battle) ClearTeam() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.phase.Is(PhaseTeamBuilding) {
		return false
	}
	b.picks = nil
	return true
}

// RandomTeam replaces the player's picks with a random full team.
func (b *Battle) RandomTeam() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.phase.Is(PhaseTeamBuilding) {
		return false
	}
	b.picks = b.draw(nil, b.teamSize)
	return true
}

// draw returns n distinct roster entries not in exclude, shuffled.
func (b *Battle) draw(exclude []*config.MonDef, n int) []*config.MonDef {
	taken := map[int]bool{}
	for _, e := range exclude {
		taken[e.ID] = true
	}
	var pool []*config.MonDef
	for i := range b.data.Roster.Mons {
		if m := &b.data.Roster.Mons[i]; !taken[m.ID] {
			pool = append(pool, m)
		}
	}
	for i := len(pool) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:min(n, len(pool))]
}

// ConfirmTeam locks in a full player team and draws the CPU team from the
// rest of the roster.
func (b *Battle) ConfirmTeam() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.phase.Is(PhaseTeamBuilding) {
		return false
	}
	if len(b.picks) != b.teamSize {
		b.logf("Pick %d projects to confirm your team.", b.teamSize)
		return false
	}
	cpu := b.draw(b.picks, b.teamSize)
	if len(cpu) < b.teamSize {
		return false
	}
	b.teams[SidePlayer] = NewTeam(MakeBattleReady(b.picks))
	b.teams[SideCPU] = NewTeam(MakeBattleReady(cpu))
	return b.phase.Fire(evConfirm) == nil
}

func (b *Battle) StartBattle() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.phase.Is(PhasePreview) {
		return false
	}
	b.turn = 1
	b.log = nil
	b.logf("--- Turn 1 ---")
	b.notify("Your Turn", NotifyTurn)
	b.logf("%s vs %s!", b.teams[SidePlayer].Active().Name(), b.teams[SideCPU].Active().Name())
	if err := b.phase.Fire(evStart); err != nil {
		return false
	}
	b.playerTurn = true
	b.animate(SidePlayer, AnimSwitchIn)
	b.animate(SideCPU, AnimSwitchIn)
	b.auto.arm()
	return true
}

// Submit runs a player action to completion, pauses included. It reports
// whether the action was accepted.
func (b *Battle) Submit(a Action) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	run, ok := b.prepare(a)
	if ok {
		run()
	}
	return ok
}

// Dispatch validates a on the caller's goroutine and resolves it on a new
// one. done closes once the round has finished, or at once when rejected.
func (b *Battle) Dispatch(a Action) (accepted bool, done <-chan struct{}) {
	ch := make(chan struct{})
	b.mu.Lock()
	run, ok := b.prepare(a)
	b.mu.Unlock()
	if !ok {
		close(ch)
		return false, ch
	}
	go func() {
		defer close(ch)
		b.mu.Lock()
		defer b.mu.Unlock()
		run()
	}()
	return true, ch
}

// MoveByName builds the action for the player's active combatant using
// the named move.
func (b *Battle) MoveByName(name string) (Action, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	active := b.teams[SidePlayer].Active()
	if active == nil {
		return Action{}, false
	}
	m := active.Move(name)
	if m == nil {
		return Action{}, false
	}
	return MoveAction(m), true
}

func (b *Battle) SelectMove(name string) bool {
	a, ok := b.MoveByName(name)
	if !ok {
		return false
	}
	return b.Submit(a)
}

func (b *Battle) SelectSwitch(i int) bool { return b.Submit(SwitchAction(i)) }

func (b *Battle) UseItem(key string, target int) bool { return b.Submit(ItemAction(key, target)) }

func (b *Battle) Run() bool { return b.Submit(RunAction()) }

// SetAutoBattle turns the auto-battle scheduler on or off.
func (b *Battle) SetAutoBattle(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setAutoLocked(on)
}

func (b *Battle) setAutoLocked(on bool) {
	if b.autoOn == on {
		return
	}
	b.autoOn = on
	if on {
		b.logf("Auto-Battle Enabled.")
		b.notify("Auto-Battle ON", NotifyInfo)
	} else {
		b.logf("Auto-Battle Disabled.")
		b.notify("Auto-Battle OFF", NotifyInfo)
	}
	b.emit(EvAuto, map[string]any{"enabled": on})
	b.auto.arm()
}

// Reset waits for any round in progress, then returns the session to team
// building with fresh inventory and stats.
func (b *Battle) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.processing {
		b.idle.Wait()
	}
	b.resetLocked()
}

func (b *Battle) resetLocked() {
	b.auto.cancel()
	b.autoOn = false
	_ = b.phase.Fire(evReset)
	b.turn = 1
	b.playerTurn = true
	b.processing = false
	b.winner = ""
	b.picks = nil
	b.teams = map[Side]*Team{SidePlayer: NewTeam(nil), SideCPU: NewTeam(nil)}
	b.stats = map[Side]*BattleStats{SidePlayer: {}, SideCPU: {}}
	b.inv = NewInventory(b.data.Items)
	b.anim = map[Side]AnimState{SidePlayer: AnimIdle, SideCPU: AnimIdle}
	b.trainer = map[Side]TrainerState{SidePlayer: TrainerIdle, SideCPU: TrainerIdle}
	b.dialogue = map[Side]string{}
	b.notice = nil
	b.log = nil
	b.logf("Select your team to begin!")
}

// Close stops any scheduled auto-battle action. The session stays readable.
func (b *Battle) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.autoOn = false
	b.auto.cancel()
}
