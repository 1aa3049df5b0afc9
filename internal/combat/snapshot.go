package combat

type MoveView struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	Power    int        `json:"power"`
	Accuracy float64    `json:"accuracy"`
	PP       int        `json:"pp"`
	MaxPP    int        `json:"max_pp"`
	Effect   StatusKind `json:"effect,omitempty"`
}

type MonView struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Types       []string   `json:"types"`
	HP          int        `json:"hp"`
	MaxHP       int        `json:"max_hp"`
	Status      StatusKind `json:"status,omitempty"`
	StatusTurns int        `json:"status_turns,omitempty"`
	Fainted     bool       `json:"fainted"`
	Moves       []MoveView `json:"moves"`
}

type SideView struct {
	Team             []MonView    `json:"team"`
	Active           int          `json:"active"`
	Anim             AnimState    `json:"anim"`
	Trainer          TrainerState `json:"trainer"`
	Dialogue         string       `json:"dialogue,omitempty"`
	SwitchedLastTurn bool         `json:"switched_last_turn"`
	Stats            BattleStats  `json:"stats"`
}

// Snapshot is a deep copy of session state. Nothing in it aliases the
// live battle.
type Snapshot struct {
	ID         string     `json:"id,omitempty"`
	Phase      Phase      `json:"phase"`
	Turn       int        `json:"turn"`
	PlayerTurn bool       `json:"player_turn"`
	Processing bool       `json:"processing"`
	Winner     Side       `json:"winner,omitempty"`
	AutoBattle bool       `json:"auto_battle"`
	Picks      []int      `json:"picks"`
	Player     SideView   `json:"player"`
	CPU        SideView   `json:"cpu"`
	Inventory  []ItemSlot `json:"inventory"`
	Log        []string   `json:"log"`
	Notice     *Notice    `json:"notice,omitempty"`
}

func monView(c *Combatant) MonView {
	v := MonView{
		ID:          c.Entry.ID,
		Name:        c.Name(),
		Types:       append([]string(nil), c.Types()...),
		HP:          c.HP,
		MaxHP:       c.MaxHP(),
		Status:      c.Status,
		StatusTurns: c.StatusTurns,
		Fainted:     c.Fainted(),
	}
	for _, m := range c.Moves {
		v.Moves = append(v.Moves, MoveView{
			Name: m.Name(), Type: m.Type(), Power: m.Power(), Accuracy: m.Def.Accuracy,
			PP: m.PP, MaxPP: m.Def.PP, Effect: m.Status(),
		})
	}
	return v
}

func (b *Battle) sideView(s Side) SideView {
	t := b.teams[s]
	v := SideView{
		Active:           t.ActiveIndex,
		Anim:             b.anim[s],
		Trainer:          b.trainer[s],
		Dialogue:         b.dialogue[s],
		SwitchedLastTurn: t.SwitchedLastTurn,
		Stats:            *b.stats[s],
	}
	for _, c := range t.Mons {
		v.Team = append(v.Team, monView(c))
	}
	return v
}

func (b *Battle) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Battle) snapshotLocked() Snapshot {
	s := Snapshot{
		ID:         b.id,
		Phase:      b.phase.Current(),
		Turn:       b.turn,
		PlayerTurn: b.playerTurn,
		Processing: b.processing,
		Winner:     b.winner,
		AutoBattle: b.autoOn,
		Picks:      []int{},
		Player:     b.sideView(SidePlayer),
		CPU:        b.sideView(SideCPU),
		Inventory:  b.inv.clone(),
		Log:        append([]string(nil), b.log...),
	}
	for _, p := range b.picks {
		s.Picks = append(s.Picks, p.ID)
	}
	if b.notice != nil {
		n := *b.notice
		s.Notice = &n
	}
	return s
}
