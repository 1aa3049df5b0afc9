package config

import (
	"errors"
	"fmt"
)

var validStatuses = map[string]bool{"burn": true, "poison": true, "sleep": true, "stun": true}

// Validate checks the load-time preconditions the engine relies on.
func (d *Data) Validate(teamSize int) error {
	if d.Roster == nil || d.Items == nil || d.Types == nil {
		return errors.New("reference data incomplete")
	}
	if len(d.Roster.Mons) < 2*teamSize {
		return fmt.Errorf("roster has %d entries, need at least %d for two teams", len(d.Roster.Mons), 2*teamSize)
	}
	ids := make(map[int]struct{}, len(d.Roster.Mons))
	for _, m := range d.Roster.Mons {
		if _, dup := ids[m.ID]; dup {
			return fmt.Errorf("mon %d: duplicate id", m.ID)
		}
		ids[m.ID] = struct{}{}
		if m.Name == "" {
			return fmt.Errorf("mon %d: missing name", m.ID)
		}
		if len(m.Types) < 1 || len(m.Types) > 2 {
			return fmt.Errorf("mon %q: needs one or two types, got %d", m.Name, len(m.Types))
		}
		if m.Stats.HP <= 0 || m.Stats.Atk <= 0 || m.Stats.Def <= 0 {
			return fmt.Errorf("mon %q: hp, atk and def must be positive", m.Name)
		}
		if len(m.Moves) == 0 {
			return fmt.Errorf("mon %q: no moves", m.Name)
		}
		for _, mv := range m.Moves {
			if err := validateMove(mv); err != nil {
				return fmt.Errorf("mon %q: %w", m.Name, err)
			}
		}
	}
	keys := make(map[string]struct{}, len(d.Items.Items))
	for _, it := range d.Items.Items {
		if _, dup := keys[it.Key]; dup || it.Key == "" {
			return fmt.Errorf("item %q: missing or duplicate key", it.Name)
		}
		keys[it.Key] = struct{}{}
		switch it.Effect.Type {
		case ItemHeal:
			if it.Effect.Amount <= 0 {
				return fmt.Errorf("item %q: heal amount must be positive", it.Key)
			}
		case ItemCureStatus:
		default:
			return fmt.Errorf("item %q: unknown effect %q", it.Key, it.Effect.Type)
		}
	}
	return nil
}

func validateMove(mv MoveDef) error {
	if mv.Name == "" {
		return errors.New("move without name")
	}
	if mv.Power < 0 || mv.PP <= 0 {
		return fmt.Errorf("move %q: power must be >= 0 and pp > 0", mv.Name)
	}
	if mv.Accuracy < 0 || mv.Accuracy > 1 || mv.CritChance < 0 || mv.CritChance > 1 {
		return fmt.Errorf("move %q: accuracy and crit chance must lie in [0,1]", mv.Name)
	}
	if mv.Effect != nil {
		if !validStatuses[mv.Effect.Status] {
			return fmt.Errorf("move %q: unknown status %q", mv.Name, mv.Effect.Status)
		}
		if mv.Effect.Chance < 0 || mv.Effect.Chance > 1 {
			return fmt.Errorf("move %q: effect chance must lie in [0,1]", mv.Name)
		}
	}
	return nil
}
