package combat

import "fmt"

// Notice is a transient notification for the presentation layer.
type Notice struct {
	Message string     `json:"message"`
	Kind    NotifyKind `json:"kind"`
}

func (b *Battle) emit(typ string, payload map[string]any) {
	ev := Event{Turn: b.turn, Type: typ, Payload: payload}
	for _, l := range b.listeners {
		l.fn(ev)
	}
}

func (b *Battle) logf(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	b.log = append(b.log, text)
	b.emit(EvLogLine, map[string]any{"text": text})
}

func (b *Battle) notify(msg string, kind NotifyKind) {
	b.notice = &Notice{Message: msg, Kind: kind}
	b.emit(EvNotify, map[string]any{"message": msg, "kind": string(kind)})
}

func (b *Battle) animate(side Side, st AnimState) {
	b.anim[side] = st
	b.emit(EvAnimation, map[string]any{"side": string(side), "state": string(st)})
}

// say shows a line for side and clears the other side's bubble.
func (b *Battle) say(side Side, line string) {
	b.dialogue[side] = line
	b.dialogue[side.Opponent()] = ""
	b.emit(EvDialogue, map[string]any{"side": string(side), "text": line})
}

func (b *Battle) setTrainer(side Side, st TrainerState) {
	if b.trainer[side] == st {
		return
	}
	b.trainer[side] = st
	b.emit(EvTrainer, map[string]any{"side": string(side), "state": string(st)})
}

func (b *Battle) hpChanged(side Side, idx int) {
	c := b.teams[side].Mons[idx]
	b.emit(EvHP, map[string]any{"side": string(side), "index": idx, "hp": c.HP, "max_hp": c.MaxHP()})
}

func (b *Battle) statusChanged(side Side, idx int) {
	c := b.teams[side].Mons[idx]
	b.emit(EvStatus, map[string]any{"side": string(side), "index": idx, "status": string(c.Status), "turns": c.StatusTurns})
}

func (b *Battle) switched(side Side, from, to int) {
	b.emit(EvSwitch, map[string]any{"side": string(side), "from": from, "to": to})
}
