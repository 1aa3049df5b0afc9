package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"portmon/internal/config"
	"portmon/internal/logging"
	"portmon/internal/server"
)

func main() {
	var cfgDir, settingsPath, addr string
	var debug bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&settingsPath, "settings", "", "settings file (default <config>/settings.yaml)")
	flag.StringVar(&addr, "addr", "", "listen address (overrides settings)")
	flag.BoolVar(&debug, "debug", false, "debug logging")
	flag.Parse()
	logging.SetDebug(debug)

	if settingsPath == "" {
		settingsPath = filepath.Join(cfgDir, "settings.yaml")
	}
	data, err := config.LoadAll(cfgDir)
	if err != nil {
		logging.Fatal("load assets", err, logging.Fields{"dir": cfgDir})
	}
	st, err := config.LoadSettings(settingsPath)
	if err != nil {
		logging.Fatal("load settings", err, logging.Fields{"path": settingsPath})
	}
	if err := data.Validate(st.TeamSize); err != nil {
		logging.Fatal("assets cannot field two teams", err, logging.Fields{"team_size": st.TeamSize})
	}
	if addr != "" {
		st.Server.Addr = addr
	}

	srv := server.New(server.Config{Data: data, Settings: st})
	stop := make(chan struct{})
	go srv.Hub().RunSweeper(time.Minute, st.Server.SessionTTL(), stop)

	httpSrv := &http.Server{Addr: st.Server.Addr, Handler: srv, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logging.Info("battlesvc listening", logging.Fields{"addr": st.Server.Addr, "roster": len(data.Roster.Mons)})
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("serve", err, nil)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	close(stop)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logging.Error("shutdown", err, nil)
	}
	logging.Info("battlesvc stopped", nil)
}
