package combat

// Team is one side's fixed roster slots and which of them is fighting.
type Team struct {
	Mons             []*Combatant
	ActiveIndex      int
	SwitchedLastTurn bool
}

func NewTeam(mons []*Combatant) *Team {
	return &Team{Mons: mons}
}

func (t *Team) Active() *Combatant {
	if t == nil || t.ActiveIndex < 0 || t.ActiveIndex >= len(t.Mons) {
		return nil
	}
	return t.Mons[t.ActiveIndex]
}

// CanSwitchTo reports whether slot i is a legal replacement: in range, not
// the active slot and not fainted.
func (t *Team) CanSwitchTo(i int) bool {
	return i >= 0 && i < len(t.Mons) && i != t.ActiveIndex && !t.Mons[i].Fainted()
}

func (t *Team) TrySwitchTo(i int) bool {
	if !t.CanSwitchTo(i) {
		return false
	}
	t.ActiveIndex = i
	return true
}

// FirstLiving returns the lowest slot with HP left, or -1.
func (t *Team) FirstLiving() int {
	for i, m := range t.Mons {
		if !m.Fainted() {
			return i
		}
	}
	return -1
}

func (t *Team) AnyLiving() bool { return t.FirstLiving() >= 0 }

func (t *Team) Living() int {
	n := 0
	for _, m := range t.Mons {
		if !m.Fainted() {
			n++
		}
	}
	return n
}

func (t *Team) SwitchTargets() []int {
	var out []int
	for i := range t.Mons {
		if t.CanSwitchTo(i) {
			out = append(out, i)
		}
	}
	return out
}
