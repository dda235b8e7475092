// Package cli handles cmd line input for DBG and testing the cycling engine
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ysandre/wordcycle/internal/utils"
	"github.com/ysandre/wordcycle/pkg/candidate"
	"github.com/ysandre/wordcycle/pkg/complete"
	"github.com/ysandre/wordcycle/pkg/config"
	"github.com/ysandre/wordcycle/pkg/document"
)

var selectedStyle = lipgloss.NewStyle().Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

// statusLogger routes session notices to the charm logger.
type statusLogger struct{}

func (statusLogger) ReportMessage(msg string) {
	log.Warn(msg)
}

// InputHandler drives a completion session against an in-memory document.
// Bare words get typed at the cursor, the cycle commands step through the
// candidates the way a host editor would.
type InputHandler struct {
	doc       *document.Document
	session   *complete.Session
	listLimit int
}

// NewInputHandler handles initialization of the InputHandler with the
// starting buffer text, the active config, and the words listing limit.
func NewInputHandler(text string, cfg *config.Config, listLimit int) *InputHandler {
	return &InputHandler{
		doc:       document.New(text, document.WithCursor(len(text))),
		session:   complete.NewSession(cfg, statusLogger{}),
		listLimit: listLimit,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin, and passes
// the trimmed input to handleInput() for processing.
// Loop terminates on the quit command or if reading from stdin fails
func (h *InputHandler) Start() error {
	log.Print("WordCycle CLI [BETA]")
	log.Print("type a word to insert it, > and < cycle completions, + starts a new word,")
	log.Print("u undoes, w [prefix] lists words, i prints info, q quits (or Ctrl+C):")
	h.printBuffer()

	reader := bufio.NewReader(os.Stdin)
	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !h.handleInput(line) {
			return nil
		}
	}
}

// handleInput processes a single command line. Returns false when the
// loop should stop.
func (h *InputHandler) handleInput(line string) bool {
	switch {
	case line == "q":
		return false
	case line == ">":
		h.cycle(candidate.Forward)
	case line == "<":
		h.cycle(candidate.Backward)
	case line == "+":
		h.typeText(" ")
	case line == "u":
		h.undo()
	case line == "i":
		h.info()
	case line == "w":
		h.words("")
	case strings.HasPrefix(line, "w "):
		h.words(strings.TrimSpace(strings.TrimPrefix(line, "w ")))
	default:
		h.typeWord(line)
	}
	return true
}

// typeWord validates and inserts a bare word at the cursor.
func (h *InputHandler) typeWord(text string) {
	for _, r := range text {
		if !h.doc.IsWordChar(r) {
			log.Errorf("Only word characters can be typed, got: '%s'", text)
			return
		}
	}
	h.typeText(text)
}

func (h *InputHandler) typeText(text string) {
	pos := h.doc.CursorPosition()
	h.doc.ReplaceRange(pos, pos, text)
	h.doc.SetCursorPosition(pos + len(text))
	h.printBuffer()
}

// cycle performs one completion step and prints the applied edit together
// with the ranked candidate list.
func (h *InputHandler) cycle(dir candidate.Direction) {
	start := time.Now()
	res := h.session.Cycle(h.doc, dir)
	elapsed := time.Since(start)

	switch res.Status {
	case complete.StatusNoPrefix:
		log.Warn("Cursor is not behind a word, type something first")
		return
	case complete.StatusNoMatch:
		// the session already reported the notice
		return
	}

	log.Debugf("Took [ %v ] for this step", elapsed)
	log.Printf("Inserted '%s' at [%d, %d), cursor now %d", res.Text, res.Start, res.End, res.Cursor)
	h.printCandidates(res.Text)
	h.printBuffer()
}

// printCandidates lists the cycle ring, accenting the current selection.
// Fuzzy matches carry a ~ marker.
func (h *InputHandler) printCandidates(current string) {
	items := h.session.Candidates()
	log.Printf("Cycling through %d candidates:", len(items))
	for i, c := range items {
		word := c.Text
		if word == current {
			word = selectedStyle.Render(word)
		}
		marker := " "
		if c.Type == candidate.MatchFuzzy {
			marker = "~"
		}
		fmtDist := utils.FormatWithCommas(c.Distance)
		log.Printf("%2d.%s %-30s (dist: %8s)", i+1, marker, word, fmtDist)
	}
}

func (h *InputHandler) undo() {
	if !h.doc.Undo() {
		log.Warn("Nothing to undo")
		return
	}
	h.printBuffer()
}

// words lists the indexed buffer vocabulary for an optional prefix.
func (h *InputHandler) words(prefix string) {
	start := time.Now()
	entries := h.doc.Index().WithPrefix(prefix, h.listLimit)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	if len(entries) == 0 {
		log.Warnf("No words found for prefix: '%s'", prefix)
		return
	}

	log.Printf("Found %d words for prefix '%s':", len(entries), prefix)
	for i, e := range entries {
		fmtCount := utils.FormatWithCommas(e.Count)
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", e.Word)
		log.Printf("%2d. %-40s (seen: %8s)", i+1, clWord, fmtCount)
	}
}

// info prints the session and config state.
func (h *InputHandler) info() {
	cfg := h.session.Config()
	log.Printf("Buffer: %d bytes, cursor at %d", h.doc.Length(), h.doc.CursorPosition())
	log.Printf("Distinct words indexed: %s", utils.FormatWithCommas(h.doc.Index().Words()))
	log.Printf("Sort order: %d, candidates limit: %d, distance limit: %d KB",
		cfg.SortOrder, cfg.CandidatesLimit, cfg.DistanceLimitKB)
	log.Printf("Skip fuzzy if exact: %v, remove trailing word part: %v",
		cfg.SkipFuzzyIfExact, cfg.RemoveTrailingWordPart)
	if sel := h.session.Selection(); sel != "" {
		log.Printf("Current selection: '%s'", sel)
	}
}

// printBuffer shows the buffer with the cursor marked inline.
func (h *InputHandler) printBuffer() {
	text := h.doc.String()
	pos := h.doc.CursorPosition()
	log.Printf("[buffer] %s|%s", text[:pos], text[pos:])
}
