package combat

type BattleStats struct {
	DamageDealt        int `json:"damage_dealt"`
	CritsLanded        int `json:"crits_landed"`
	SuperEffectiveHits int `json:"super_effective_hits"`
	StatusInflicted    int `json:"status_inflicted"`
}

func (s *BattleStats) Add(o BattleStats) {
	s.DamageDealt += o.DamageDealt
	s.CritsLanded += o.CritsLanded
	s.SuperEffectiveHits += o.SuperEffectiveHits
	s.StatusInflicted += o.StatusInflicted
}
