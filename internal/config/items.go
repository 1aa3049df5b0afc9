package config

const (
	ItemHeal       = "heal"
	ItemCureStatus = "cure_status"
)

type ItemsConfig struct {
	Items []ItemDef `yaml:"items"`
}

type ItemDef struct {
	Key         string     `yaml:"key" json:"key"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description,omitempty"`
	Effect      ItemEffect `yaml:"effect" json:"effect"`
	Quantity    int        `yaml:"quantity" json:"quantity"`
}

type ItemEffect struct {
	Type   string `yaml:"type" json:"type"`
	Amount int    `yaml:"amount" json:"amount,omitempty"`
}

func (ic *ItemsConfig) ByKey(key string) (*ItemDef, bool) {
	for i := range ic.Items {
		if ic.Items[i].Key == key {
			return &ic.Items[i], true
		}
	}
	return nil, false
}
