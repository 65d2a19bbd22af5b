package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"anki-creator/internal/domain"
	"anki-creator/internal/logging"
	"anki-creator/internal/usecase"
)

// Server is a primary adapter that exposes the host commands over HTTP and
// pushes events to the UI over a websocket.
// It depends on the use case (primary port).
type Server struct {
	usecase usecase.AppUseCase
	hub     *Hub
	server  *http.Server
}

// NewServer creates the HTTP server bound to addr.
func NewServer(uc usecase.AppUseCase, hub *Hub, addr string) *Server {
	srv := &Server{usecase: uc, hub: hub}
	srv.server = &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)

	r.Get("/", s.handleRoot)
	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
		r.Get("/config-path", s.handleConfigPath)
		r.Get("/dirs/config", s.handleConfigDir)
		r.Get("/dirs/data", s.handleDataDir)
		r.Get("/shortcuts", s.handleListShortcuts)
		r.Post("/shortcuts", s.handleRegisterShortcut)
		r.Delete("/shortcuts", s.handleUnregisterAll)
		r.Delete("/shortcuts/{shortcut}", s.handleUnregisterShortcut)
		r.Post("/copy", s.handleCopy)
		r.Get("/greet", s.handleGreet)
		r.Get("/events", s.hub.ServeHTTP)
	})
	return r
}

// Start blocks and serves HTTP traffic.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and disconnects event clients.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.server.Shutdown(ctx)
}

type settingsView struct {
	APIKey *string `json:"api_key"`
}

type shortcutPayload struct {
	Shortcut string `json:"shortcut"`
	Action   string `json:"action"`
}

type pathView struct {
	Path string `json:"path"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, settingsView{APIKey: s.usecase.Settings().APIKey})
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsView
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid JSON"))
		return
	}
	if err := s.usecase.SetAPIKey(req.APIKey); err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, settingsView{APIKey: s.usecase.Settings().APIKey})
}

func (s *Server) handleConfigPath(w http.ResponseWriter, r *http.Request) {
	respondPath(w, s.usecase.ConfigPath)
}

func (s *Server) handleConfigDir(w http.ResponseWriter, r *http.Request) {
	respondPath(w, s.usecase.ConfigDir)
}

func (s *Server) handleDataDir(w http.ResponseWriter, r *http.Request) {
	respondPath(w, s.usecase.DataDir)
}

func respondPath(w http.ResponseWriter, resolve func() (string, error)) {
	path, err := resolve()
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, pathView{Path: path})
}

func (s *Server) handleListShortcuts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.usecase.Shortcuts())
}

func (s *Server) handleRegisterShortcut(w http.ResponseWriter, r *http.Request) {
	var req shortcutPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("invalid JSON"))
		return
	}
	if err := s.usecase.RegisterShortcut(req.Shortcut, req.Action); err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusCreated, s.usecase.Shortcuts())
}

func (s *Server) handleUnregisterShortcut(w http.ResponseWriter, r *http.Request) {
	spec, err := url.PathUnescape(chi.URLParam(r, "shortcut"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.usecase.UnregisterShortcut(spec); err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnregisterAll(w http.ResponseWriter, r *http.Request) {
	if err := s.usecase.UnregisterAllShortcuts(); err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	s.usecase.PressCopy()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGreet(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": s.usecase.Greet(r.URL.Query().Get("name"))})
}

// statusFor maps domain errors onto HTTP status codes. The body is always the
// plain error message.
func statusFor(err error) int {
	var parseErr *domain.ParseError
	switch {
	case errors.Is(err, domain.ErrInvalidShortcut):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrShortcutInUse):
		return http.StatusConflict
	case errors.Is(err, domain.ErrShortcutNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedPlatform):
		return http.StatusNotImplemented
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Warnf("encode JSON: %v", err)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Debugf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Anki Creator</title>
    <style>
        body { font-family: sans-serif; max-width: 600px; margin: 50px auto; padding: 20px; }
        h1 { color: #333; }
        .info { background: #f0f0f0; padding: 15px; border-radius: 5px; margin: 20px 0; }
        button { background: #007bff; color: white; border: none; padding: 10px 20px; border-radius: 5px; cursor: pointer; }
        button:hover { background: #0056b3; }
        input { padding: 8px; margin: 5px; width: 300px; }
        #events { font-family: monospace; font-size: 12px; white-space: pre; }
    </style>
</head>
<body>
    <h1>Anki Creator</h1>
    <div>
        <label>API key:</label>
        <input type="password" id="apiKey">
        <button onclick="save()">Save</button>
    </div>
    <div class="info" id="shortcuts">Loading...</div>
    <div class="info" id="events"></div>
    <script>
        async function load() {
            const s = await (await fetch('/api/settings')).json();
            document.getElementById('apiKey').value = s.api_key || '';
            const b = await (await fetch('/api/shortcuts')).json();
            document.getElementById('shortcuts').innerText =
                b.map(x => x.shortcut + ' → ' + x.action).join('\n') || 'No shortcuts';
        }

        async function save() {
            const v = document.getElementById('apiKey').value;
            await fetch('/api/settings', {
                method: 'PUT',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({api_key: v === '' ? null : v})
            });
            await load();
        }

        const ws = new WebSocket('ws://' + location.host + '/api/events');
        ws.onmessage = (m) => {
            const el = document.getElementById('events');
            el.textContent = m.data + '\n' + el.textContent;
        };

        load();
    </script>
</body>
</html>`))
}
