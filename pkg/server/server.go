package server

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ysandre/wordcycle/internal/utils"
	"github.com/ysandre/wordcycle/pkg/candidate"
	"github.com/ysandre/wordcycle/pkg/complete"
	"github.com/ysandre/wordcycle/pkg/config"
	"github.com/ysandre/wordcycle/pkg/document"
)

// statusBuffer collects the session's status bar notices so cycle
// responses can carry them back to the host.
type statusBuffer struct {
	last string
}

func (b *statusBuffer) ReportMessage(msg string) {
	b.last = msg
}

func (b *statusBuffer) take() string {
	msg := b.last
	b.last = ""
	return msg
}

// Server handles the IPC for completion cycling
type Server struct {
	session *complete.Session
	cfg     *config.Config
	cfgPath string
	status  *statusBuffer
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	lastDoc *document.Document
	watcher *config.Watcher
}

// NewServer creates a cycling server using stdin/stdout for IPC. cfgPath
// is where config updates get persisted.
func NewServer(cfg *config.Config, cfgPath string) *Server {
	return newServer(cfg, cfgPath, os.Stdin, os.Stdout)
}

func newServer(cfg *config.Config, cfgPath string, r io.Reader, w io.Writer) *Server {
	status := &statusBuffer{}
	return &Server{
		session: complete.NewSession(cfg, status),
		cfg:     cfg,
		cfgPath: cfgPath,
		status:  status,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
	}
}

// WatchConfig reloads the settings file between requests whenever it
// changes on disk.
func (s *Server) WatchConfig() error {
	w, err := config.NewWatcher(s.cfgPath)
	if err != nil {
		return err
	}
	s.watcher = w
	return nil
}

// Close releases the config watcher, if any.
func (s *Server) Close() {
	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	log.Debug("Starting server.")

	// Signal that the server is ready
	s.send(StatusResponse{Status: "ready"})

	// incoming requests stdin
	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			// a broken frame loses stream sync, no point continuing
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			return err
		}
		s.applyConfigUpdates()
		s.handleRequest(req)
	}
}

// applyConfigUpdates drains the watcher so disk-side config edits take
// effect before the next request.
func (s *Server) applyConfigUpdates() {
	if s.watcher == nil {
		return
	}
	select {
	case cfg := <-s.watcher.Updates():
		s.cfg = cfg
		s.session.SetConfig(cfg)
		log.Debug("Applied config change from disk")
	default:
	}
}

// handleRequest dispatches an incoming request
func (s *Server) handleRequest(req Request) {
	switch req.Op {
	case "cycle_forward":
		s.handleCycle(req, candidate.Forward)
	case "cycle_backward":
		s.handleCycle(req, candidate.Backward)
	case "reset":
		s.session.Reset()
		s.lastDoc = nil
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case "config":
		s.handleConfig(req)
	case "get_config":
		s.sendConfig(req.ID)
	case "words":
		s.handleWords(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown op: %s", req.Op), 400)
	}
}

// handleCycle runs one completion step against the buffer snapshot the
// host sent and replies with the edit to apply.
func (s *Server) handleCycle(req Request, dir candidate.Direction) {
	doc := document.New(req.Text,
		document.WithCursor(req.Cursor),
		document.WithWordChars(req.WordChars))
	s.lastDoc = doc

	start := time.Now()
	res := s.session.Cycle(doc, dir)
	elapsed := time.Since(start)

	resp := CycleResponse{
		ID:        req.ID,
		TimeTaken: elapsed.Microseconds(),
	}
	switch res.Status {
	case complete.StatusApplied:
		resp.Status = "ok"
		resp.ReplaceStart = res.Start
		resp.ReplaceEnd = res.End
		resp.Text = res.Text
		resp.Cursor = res.Cursor
		resp.Count = res.Candidates
	case complete.StatusNoMatch:
		resp.Status = "no_match"
		resp.Message = s.status.take()
	case complete.StatusNoPrefix:
		resp.Status = "no_prefix"
	}
	s.send(resp)
}

// handleConfig applies the non-nil settings fields, persists them, and
// echoes the active config.
func (s *Server) handleConfig(req Request) {
	if err := utils.EnsureDir(filepath.Dir(s.cfgPath)); err != nil {
		log.Errorf("Creating config directory: %v", err)
		s.sendError(req.ID, "Configuration directory could not be created.", 500)
		return
	}
	err := s.cfg.Update(s.cfgPath, req.SortOrder, req.CandidatesLimit,
		req.DistanceLimitKB, req.SkipFuzzyIfExact, req.RemoveTrailingWordPart)
	if err != nil {
		s.sendError(req.ID, fmt.Sprintf("Saving config: %v", err), 500)
		return
	}
	s.session.SetConfig(s.cfg)
	s.sendConfig(req.ID)
}

func (s *Server) sendConfig(id string) {
	s.send(ConfigResponse{
		ID:                     id,
		Status:                 "ok",
		SortOrder:              int(s.cfg.SortOrder),
		CandidatesLimit:        s.cfg.CandidatesLimit,
		DistanceLimitKB:        s.cfg.DistanceLimitKB,
		SkipFuzzyIfExact:       s.cfg.SkipFuzzyIfExact,
		RemoveTrailingWordPart: s.cfg.RemoveTrailingWordPart,
	})
}

// handleWords lists the buffer vocabulary, scoped to an optional prefix.
// Without a text field it falls back to the last cycled buffer.
func (s *Server) handleWords(req Request) {
	doc := s.lastDoc
	if req.Text != "" {
		doc = document.New(req.Text, document.WithWordChars(req.WordChars))
	}
	if doc == nil {
		s.sendError(req.ID, "Missing 't' parameter", 400)
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = 10
	}

	entries := doc.Index().WithPrefix(req.Prefix, limit)
	words := make([]WordEntry, len(entries))
	for i, e := range entries {
		words[i] = WordEntry{Word: e.Word, Count: e.Count}
	}
	s.send(WordsResponse{ID: req.ID, Status: "ok", Words: words, Count: len(words)})
}

// send encodes one response frame onto the wire.
func (s *Server) send(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(RequestError{ID: id, Error: message, Code: code})
}
