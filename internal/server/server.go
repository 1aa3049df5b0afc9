package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"portmon/internal/config"
	"portmon/internal/logging"
)

type Config struct {
	Data     *config.Data
	Settings *config.Settings
	// Sleep paces battle rounds; nil means time.Sleep.
	Sleep func(time.Duration)
}

type Server struct {
	hub      *Hub
	data     *config.Data
	settings *config.Settings
	router   *mux.Router
	upgrader websocket.Upgrader
}

func New(cfg Config) *Server {
	st := cfg.Settings
	if st == nil {
		st = config.DefaultSettings()
	}
	s := &Server{
		hub:      NewHub(cfg.Data, st, cfg.Sleep),
		data:     cfg.Data,
		settings: st,
		router:   mux.NewRouter(),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	s.routes()
	return s
}

func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

func (s *Server) routes() {
	r := s.router
	r.HandleFunc("/api/roster", s.handleRoster).Methods("GET")
	r.HandleFunc("/api/sessions", s.handleCreate).Methods("POST")
	r.HandleFunc("/api/sessions/{id}", s.handleGet).Methods("GET")
	r.HandleFunc("/api/sessions/{id}", s.handleDelete).Methods("DELETE")
	r.HandleFunc("/api/sessions/{id}/team/{op}", s.handleInput("team/")).Methods("POST")
	r.HandleFunc("/api/sessions/{id}/{op}", s.handleInput("")).Methods("POST")
	r.HandleFunc("/ws/sessions/{id}", s.handleWS).Methods("GET")
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.settings.Server.AllowedOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	logging.Info("websocket origin refused", logging.Fields{"origin": origin})
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("encode response", err, nil)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.Roster.Search(r.URL.Query().Get("q")))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	sess := s.hub.Create()
	writeJSON(w, http.StatusCreated, map[string]any{"id": sess.ID, "snapshot": sess.Battle.Snapshot()})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := mux.Vars(r)["id"]
	sess, ok := s.hub.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
	}
	return sess, ok
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.session(w, r); ok {
		writeJSON(w, http.StatusOK, sess.Battle.Snapshot())
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.hub.Remove(mux.Vars(r)["id"]) {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInput(prefix string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.session(w, r)
		if !ok {
			return
		}
		var in inputBody
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "malformed body")
			return
		}
		op := prefix + mux.Vars(r)["op"]
		accepted, err := apply(sess.Battle, op, in)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		status := http.StatusOK
		if !accepted {
			status = http.StatusConflict
			logging.Debug("input rejected", logging.Fields{"session": sess.ID, "input": op})
		}
		writeJSON(w, status, map[string]any{"accepted": accepted, "snapshot": sess.Battle.Snapshot()})
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade", err, logging.Fields{"session": sess.ID})
		return
	}
	c := newClient(conn, sess)
	sess.attach(c)
	unsubscribe := sess.Battle.Subscribe(c.onEvent)
	logging.Info("websocket connected", logging.Fields{"session": sess.ID, "remote": r.RemoteAddr})

	go c.writeLoop()
	c.readLoop()

	unsubscribe()
	sess.detach(c)
	sess.touch(time.Now())
	logging.Info("websocket closed", logging.Fields{"session": sess.ID})
}
