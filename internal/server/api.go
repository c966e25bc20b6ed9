package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/manifest"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// resolveResponse is the JSON body of GET /api/resolve.
type resolveResponse struct {
	Path    string        `json:"path"`
	Matched bool          `json:"matched"`
	Pattern string        `json:"pattern,omitempty"`
	Name    string        `json:"name,omitempty"`
	Params  router.Params `json:"params,omitempty"`
}

// navigateRequest is the JSON body of POST /api/navigate.
type navigateRequest struct {
	Path string `json:"path"`
}

// stateMessage mirrors a navigation snapshot for API and WebSocket
// consumers.
type stateMessage struct {
	State   string        `json:"state"`
	Path    string        `json:"path,omitempty"`
	Pattern string        `json:"pattern,omitempty"`
	Params  router.Params `json:"params,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func snapshotMessage(snap router.Snapshot) stateMessage {
	msg := stateMessage{
		State: snap.State.String(),
		Path:  snap.Path,
	}
	if snap.Resolution != nil && snap.Resolution.Matched() {
		msg.Pattern = snap.Resolution.Route().Pattern().Raw()
		msg.Params = snap.Resolution.Params()
	}
	if snap.Err != nil {
		msg.Error = snap.Err.Error()
	}
	return msg
}

func encodeSnapshot(snap router.Snapshot) []byte {
	data, err := json.Marshal(snapshotMessage(snap))
	if err != nil {
		return nil
	}
	return data
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest,
			errors.New("E042").WithDetail("Missing \"path\" query parameter"))
		return
	}

	res := s.table.Resolve(path)
	resp := resolveResponse{
		Path:    res.Path(),
		Matched: res.Matched(),
	}
	if res.Matched() {
		resp.Pattern = res.Route().Pattern().Raw()
		resp.Name = res.Route().Name()
		resp.Params = res.Params()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	m := manifest.FromTable(s.table)
	m.App = s.cfg.Name
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("E042").Wrap(err))
		return
	}
	target, err := router.ValidateNavTarget(req.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest,
			errors.New("E042").WithDetail("Invalid navigation target: "+err.Error()))
		return
	}

	s.navMu.Lock()
	err = s.nav.Navigate(r.Context(), target)
	snap := s.nav.Current()
	s.navMu.Unlock()

	if err != nil {
		writeError(w, http.StatusInternalServerError, errors.FromError(err, "E007"))
		return
	}
	writeJSON(w, http.StatusOK, snapshotMessage(snap))
}

// handleApp serves the SPA shell for any path that resolves against the
// route table, and a 404 JSON body for everything else.
func (s *Server) handleApp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	res := s.table.Resolve(r.URL.RequestURI())
	if !res.Matched() {
		writeError(w, http.StatusNotFound,
			errors.New("E003").WithDetail("No route matches "+res.Path()))
		return
	}

	shell := filepath.Join(s.cfg.BuildPath(), "index.html")
	if _, err := os.Stat(shell); err != nil {
		// No build yet; serve a minimal shell so the dev API is usable.
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(placeholderShell))
		return
	}
	http.ServeFile(w, r, shell)
}

const placeholderShell = `<!doctype html>
<html>
<head><title>Wayfind</title></head>
<body>
<p>No build output found. Routes are served from wayfind.json; build your app into the configured output directory.</p>
</body>
</html>
`

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err *errors.WayfindError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(err.FormatJSON()))
}
