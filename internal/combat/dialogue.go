package combat

import "strings"

var attackLines = map[Side][]string{
	SidePlayer: {
		"Go, {mon}! Use {move}!",
		"{mon}, now's our chance! {move}!",
		"Let's show them our power, {mon}! Use {move}!",
		"Alright, {mon}! {move}, let's go!",
	},
	SideCPU: {
		"Grr... {mon}, use {move}!",
		"Don't let up, {mon}! {move}!",
		"Crush them! {mon}, {move}!",
		"Heh... too easy. {mon}, use {move}!",
	},
}

var switchLines = map[Side][]string{
	SidePlayer: {
		"You did great, {oldMon}! Come back!",
		"Time for a change! Go, {newMon}!",
		"Let's switch it up! Get in there, {newMon}!",
	},
	SideCPU: {
		"Hmph. You're useless, {oldMon}!",
		"A better matchup... Go, {newMon}!",
		"Get out there, {newMon}!",
	},
}

func pickLine(rng Roller, lines []string, pairs ...string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.NewReplacer(pairs...).Replace(lines[rng.Intn(len(lines))])
}

func attackLine(rng Roller, side Side, mon, move string) string {
	return pickLine(rng, attackLines[side], "{mon}", mon, "{move}", move)
}

func switchLine(rng Roller, side Side, oldMon, newMon string) string {
	return pickLine(rng, switchLines[side], "{oldMon}", oldMon, "{newMon}", newMon)
}
