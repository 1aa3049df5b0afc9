package combat

import "portmon/internal/config"

type ItemSlot struct {
	Def      *config.ItemDef `json:"-"`
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
}

// Inventory is the player's consumables, in the order the item table
// lists them.
type Inventory struct {
	Slots []*ItemSlot
}

// NewInventory stocks every item at its configured starting quantity.
func NewInventory(cfg *config.ItemsConfig) *Inventory {
	inv := &Inventory{}
	if cfg == nil {
		return inv
	}
	for i := range cfg.Items {
		it := &cfg.Items[i]
		inv.Slots = append(inv.Slots, &ItemSlot{Def: it, Key: it.Key, Name: it.Name, Quantity: it.Quantity})
	}
	return inv
}

func (inv *Inventory) Slot(key string) *ItemSlot {
	for _, s := range inv.Slots {
		if s.Key == key {
			return s
		}
	}
	return nil
}

func (inv *Inventory) clone() []ItemSlot {
	out := make([]ItemSlot, len(inv.Slots))
	for i, s := range inv.Slots {
		out[i] = *s
	}
	return out
}
