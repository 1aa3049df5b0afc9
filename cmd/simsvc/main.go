package main

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"portmon/internal/combat"
	"portmon/internal/config"
	"portmon/internal/logging"
	"portmon/internal/util"
)

func parseTeam(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var ids []int
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func main() {
	var cfgDir, out, team string
	var seed int64
	var n, workers, maxTurns int
	var saveLog, debug bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.StringVar(&team, "team", "", "comma-separated roster ids for the player team (random when empty)")
	flag.Int64Var(&seed, "seed", 12345, "seed (0 = clock)")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&workers, "workers", 8, "parallel simulations in batch mode")
	flag.IntVar(&maxTurns, "max-turns", combat.DefaultMaxTurns, "turn cap per battle")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.BoolVar(&debug, "debug", false, "debug logging")
	flag.Parse()
	logging.SetDebug(debug)

	data, err := config.LoadAll(cfgDir)
	if err != nil {
		logging.Fatal("load assets", err, logging.Fields{"dir": cfgDir})
	}
	picks, err := parseTeam(team)
	if err != nil {
		logging.Fatal("parse team", err, logging.Fields{"team": team})
	}
	p := message.NewPrinter(language.English)

	if n <= 1 {
		env := &combat.Env{Rng: util.New(seed), MaxTurns: maxTurns}
		res := combat.RunSingle(env, data, picks, saveLog)
		if err := os.WriteFile(out, combat.MarshalPretty(res), 0644); err != nil {
			logging.Fatal("write result", err, logging.Fields{"out": out})
		}
		p.Printf("Single simsvc finished. Winner=%s, Turns=%d, Damage=%d/%d -> %s\n",
			res.Winner, res.Turns, res.PlayerStats.DamageDealt, res.CPUStats.DamageDealt, out)
		return
	}

	type monStat struct {
		Picks int `json:"picks"`
		Wins  int `json:"wins"`
	}
	type stat struct {
		Win, Loss, Draw int
		SumTurns        int
		Player, CPU     combat.BattleStats
		ByMon           map[string]*monStat
	}
	st := stat{ByMon: map[string]*monStat{}}
	count := func(names []string, won bool) {
		for _, name := range names {
			m := st.ByMon[name]
			if m == nil {
				m = &monStat{}
				st.ByMon[name] = m
			}
			m.Picks++
			if won {
				m.Wins++
			}
		}
	}

	var mu sync.Mutex
	wg := sync.WaitGroup{}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				env := &combat.Env{Rng: util.New(util.Derive(seed, workerID, i)), MaxTurns: maxTurns}
				res := combat.RunSingle(env, data, picks, false)

				mu.Lock()
				switch res.Winner {
				case combat.SidePlayer:
					st.Win++
				case combat.SideCPU:
					st.Loss++
				default:
					st.Draw++
				}
				st.SumTurns += res.Turns
				st.Player.Add(res.PlayerStats)
				st.CPU.Add(res.CPUStats)
				count(res.PlayerTeam, res.Winner == combat.SidePlayer)
				count(res.CPUTeam, res.Winner == combat.SideCPU)
				mu.Unlock()
			}
		}(w)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	summary := map[string]any{
		"runs":         n,
		"win_rate":     float64(st.Win) / float64(n),
		"losses":       st.Loss,
		"draws":        st.Draw,
		"avg_turns":    float64(st.SumTurns) / float64(n),
		"player_stats": st.Player,
		"cpu_stats":    st.CPU,
		"by_mon":       st.ByMon,
	}
	if err := os.WriteFile(out, combat.MarshalPretty(summary), 0644); err != nil {
		logging.Fatal("write summary", err, logging.Fields{"out": out})
	}
	p.Printf("Batch %d done (%d wins, %d losses, %d draws, %d player damage) -> %s\n",
		n, st.Win, st.Loss, st.Draw, st.Player.DamageDealt, filepath.Base(out))
}
