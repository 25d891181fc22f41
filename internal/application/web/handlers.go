package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/gorilla/mux"
	"github.com/penwyp/go-lap-timer/internal/core/ledger"
	"github.com/penwyp/go-lap-timer/internal/presentation/formatter"
	"github.com/penwyp/go-lap-timer/internal/presentation/view"
	"github.com/penwyp/go-lap-timer/internal/util"
)

// SessionJSON is the API view of the running session
type SessionJSON struct {
	formatter.ReportJSON
	Running             bool    `json:"running"`
	CurrentSplitSeconds float64 `json:"currentSplitSeconds"`
}

type errorJSON struct {
	Error string `json:"error"`
}

type pageData struct {
	Board view.Board
	Error string
}

// action mutates the session for one request
type action func(r *http.Request) error

func (s *Server) start(*http.Request) error { return s.tracker.Start() }
func (s *Server) stop(*http.Request) error  { return s.tracker.Stop() }

func (s *Server) toggle(*http.Request) error {
	_, err := s.tracker.Toggle()
	return err
}

func (s *Server) lap(*http.Request) error {
	_, err := s.tracker.RecordLap()
	return err
}

func (s *Server) reset(*http.Request) error {
	s.tracker.Reset()
	return nil
}

func (s *Server) skip(r *http.Request) error {
	_, err := s.tracker.ToggleSkip(mux.Vars(r)["id"])
	return err
}

func (s *Server) split(r *http.Request) error {
	_, err := s.tracker.SplitLap(mux.Vars(r)["id"])
	return err
}

// formAction runs fn and redirects back to the page, carrying any error
func (s *Server) formAction(fn action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := "/"
		if err := fn(r); err != nil {
			util.LogDebug("Form action rejected", util.F("path", r.URL.Path), util.F("error", err.Error()))
			target = "/?error=" + url.QueryEscape(err.Error())
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// apiAction runs fn and answers with the resulting session
func (s *Server) apiAction(fn action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(r); err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, s.session())
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Board: view.Build(s.tracker.Snapshot(), view.Options{
			SplitDecimals: s.decimals(),
			NewestFirst:   s.config.NewestFirst,
		}),
		Error: r.URL.Query().Get("error"),
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		util.LogError("Failed to render page", util.F("error", err.Error()))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatter.FormatCSV
	}
	f, err := formatter.New(format)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorJSON{Error: err.Error()})
		return
	}

	now := s.tracker.Now()
	report := formatter.NewReport(s.tracker.Snapshot(), now, s.decimals())

	var buf bytes.Buffer
	if err := f.Format(&buf, report); err != nil {
		util.LogError("Export failed", util.F("format", format), util.F("error", err.Error()))
		s.writeJSON(w, http.StatusInternalServerError, errorJSON{Error: "export failed"})
		return
	}

	util.LogDebugf("Exporting %d laps as %s", len(report.Laps), format)
	mime, ext := formatter.ContentType(format)
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "laps-"+now.Format("20060102-150405")+"."+ext))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) session() SessionJSON {
	snap := s.tracker.Snapshot()
	report := formatter.NewReport(snap, s.tracker.Now(), s.decimals())
	return SessionJSON{
		ReportJSON:          report.ToJSON(),
		Running:             snap.State == ledger.StateRunning,
		CurrentSplitSeconds: snap.CurrentSplit.Seconds(),
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

func (s *Server) apiMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusMethodNotAllowed, errorJSON{Error: "method " + r.Method + " not allowed"})
}

func (s *Server) apiNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusNotFound, errorJSON{Error: "no such endpoint " + r.URL.Path})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidState), errors.Is(err, ledger.ErrInvalidOperation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusFor(err), errorJSON{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
