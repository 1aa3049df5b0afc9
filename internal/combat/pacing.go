package combat

import (
	"time"

	"portmon/internal/config"
)

// Pacing holds the pauses a round takes between perceptible events.
// A zero Pacing resolves rounds without waiting.
type Pacing struct {
	Command     time.Duration
	Attack      time.Duration
	Hit         time.Duration
	Status      time.Duration
	Faint       time.Duration
	SwitchOut   time.Duration
	SwitchIn    time.Duration
	TurnHandoff time.Duration
	GameOver    time.Duration
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func PacingFrom(c config.PacingConfig) Pacing {
	return Pacing{
		Command:     ms(c.Command),
		Attack:      ms(c.Attack),
		Hit:         ms(c.Hit),
		Status:      ms(c.Status),
		Faint:       ms(c.Faint),
		SwitchOut:   ms(c.SwitchOut),
		SwitchIn:    ms(c.SwitchIn),
		TurnHandoff: ms(c.TurnHandoff),
		GameOver:    ms(c.GameOver),
	}
}
