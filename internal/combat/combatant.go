package combat

import "portmon/internal/config"

// Move is a move definition plus its remaining uses for one combatant.
type Move struct {
	Def *config.MoveDef
	PP  int
}

func (m *Move) Name() string { return m.Def.Name }
func (m *Move) Usable() bool { return m.PP > 0 }
func (m *Move) Power() int   { return m.Def.Power }
func (m *Move) Type() string { return m.Def.Type }

func (m *Move) Status() StatusKind {
	if m.Def.Effect == nil {
		return StatusNone
	}
	return StatusKind(m.Def.Effect.Status)
}

// Combatant is a roster entry with the fields a battle mutates.
type Combatant struct {
	Entry       *config.MonDef
	HP          int
	Status      StatusKind
	StatusTurns int
	Moves       []*Move
}

func NewCombatant(entry *config.MonDef) *Combatant {
	c := &Combatant{Entry: entry, HP: entry.Stats.HP, Status: StatusNone}
	c.Moves = make([]*Move, len(entry.Moves))
	for i := range entry.Moves {
		c.Moves[i] = &Move{Def: &entry.Moves[i], PP: entry.Moves[i].PP}
	}
	return c
}

// MakeBattleReady instantiates one combatant per entry, in order.
func MakeBattleReady(entries []*config.MonDef) []*Combatant {
	out := make([]*Combatant, len(entries))
	for i, e := range entries {
		out[i] = NewCombatant(e)
	}
	return out
}

func (c *Combatant) Name() string    { return c.Entry.Name }
func (c *Combatant) MaxHP() int      { return c.Entry.Stats.HP }
func (c *Combatant) Attack() int     { return c.Entry.Stats.Atk }
func (c *Combatant) Defense() int    { return c.Entry.Stats.Def }
func (c *Combatant) Types() []string { return c.Entry.Types }
func (c *Combatant) Fainted() bool   { return c.HP <= 0 }

func (c *Combatant) HPFraction() float64 {
	if c.MaxHP() <= 0 {
		return 0
	}
	return float64(c.HP) / float64(c.MaxHP())
}

func (c *Combatant) HasType(t string) bool {
	ft := config.Fold(t)
	for _, own := range c.Entry.Types {
		if config.Fold(own) == ft {
			return true
		}
	}
	return false
}

// TakeDamage lowers HP, never below zero, and returns the new HP.
func (c *Combatant) TakeDamage(n int) int {
	if n < 0 {
		n = 0
	}
	c.HP -= n
	if c.HP < 0 {
		c.HP = 0
	}
	return c.HP
}

// Heal raises HP up to the maximum and returns the amount restored.
func (c *Combatant) Heal(n int) int {
	if n <= 0 || c.Fainted() {
		return 0
	}
	before := c.HP
	c.HP += n
	if c.HP > c.MaxHP() {
		c.HP = c.MaxHP()
	}
	return c.HP - before
}

// ApplyStatus sets kind for its fixed duration. It refuses when a status is
// already active or the combatant has fainted.
func (c *Combatant) ApplyStatus(kind StatusKind) bool {
	if kind == StatusNone || c.Status != StatusNone || c.Fainted() {
		return false
	}
	c.Status = kind
	c.StatusTurns = kind.Duration()
	return true
}

func (c *Combatant) ClearStatus() {
	c.Status = StatusNone
	c.StatusTurns = 0
}

// spendStatusTurn counts one turn off the active status and reports whether
// it ran out. The status itself is left for the caller to clear.
func (c *Combatant) spendStatusTurn() bool {
	c.StatusTurns--
	if c.StatusTurns <= 0 {
		c.StatusTurns = 0
		return true
	}
	return false
}

func (c *Combatant) Move(name string) *Move {
	for _, m := range c.Moves {
		if m.Def.Name == name {
			return m
		}
	}
	return nil
}

func (c *Combatant) UsableMoves() []*Move {
	var out []*Move
	for _, m := range c.Moves {
		if m.Usable() {
			out = append(out, m)
		}
	}
	return out
}
