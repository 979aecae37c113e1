// Package cli runs the interactive prompt used to try searches by hand.
package cli

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/mnemo/internal/utils"
	"github.com/bastiangx/mnemo/pkg/association"
	"github.com/bastiangx/mnemo/pkg/splitter"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	wordStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	pieceStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	dimStyle = lipgloss.NewStyle().Faint(true)
)

const help = `commands:
  <word>        split a word and list its associations
  :d <word>     definitions of the closest match
  :c <word>     closest match
  :l <n>        set the association limit
  :s            toggle splitting
  :q            quit`

// InputHandler reads words from a reader and prints the best split with its associations.
type InputHandler struct {
	engine       *splitter.Engine
	lookup       association.Lookup
	limit        int
	split        bool
	requestCount int
	out          *log.Logger
}

// NewInputHandler creates a handler printing to w.
func NewInputHandler(engine *splitter.Engine, lookup association.Lookup, limit int, split bool, w io.Writer) *InputHandler {
	return &InputHandler{
		engine: engine,
		lookup: lookup,
		limit:  limit,
		split:  split,
		out: log.NewWithOptions(w, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
		}),
	}
}

// Start runs the prompt until the input ends, ":q" is entered or ctx is done.
func (h *InputHandler) Start(ctx context.Context, in io.Reader) error {
	h.out.Print("mnemo")
	h.out.Print("type a word and press Enter, :h for help (Ctrl+C to exit):")

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		h.out.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ":q" {
			return nil
		}
		h.handleInput(ctx, line)
	}
}

// Requests returns how many lines were handled.
func (h *InputHandler) Requests() int { return h.requestCount }

func (h *InputHandler) handleInput(ctx context.Context, line string) {
	h.requestCount++

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":h":
		h.out.Print(help)
	case ":l":
		n, err := strconv.Atoi(arg)
		if err != nil || !utils.IsValidLimit(n) {
			h.out.Errorf("Invalid limit: %q", arg)
			return
		}
		h.limit = n
		h.out.Printf("limit set to %d", n)
	case ":s":
		h.split = !h.split
		h.out.Printf("splitting %s", onOff(h.split))
	case ":d", ":c":
		h.ShowEntry(ctx, utils.NormalizeWord(arg), cmd == ":d")
	default:
		if strings.HasPrefix(cmd, ":") {
			h.out.Errorf("Unknown command: %s", cmd)
			return
		}
		h.ShowSplit(ctx, utils.NormalizeWord(line))
	}
}

// ShowSplit prints the best candidate for word and the exposed associations of each piece.
func (h *InputHandler) ShowSplit(ctx context.Context, word string) {
	if !utils.IsValidRequest(word, h.limit) {
		h.out.Errorf("Not a word: %q", word)
		return
	}

	start := time.Now()
	candidate, err := h.engine.Best(ctx, word, h.limit, h.split)
	if err != nil {
		h.out.Errorf("Search failed for '%s': %v", word, err)
		return
	}
	log.Debugf("Took [ %v ] for '%s'", time.Since(start), word)

	names := make([]string, len(candidate.Pieces))
	for i, p := range candidate.Pieces {
		names[i] = p.Fragment()
	}
	h.out.Printf("%s %s", pieceStyle.Render(strings.Join(names, " | ")),
		dimStyle.Render("grade "+strconv.FormatFloat(candidate.Grade, 'f', 4, 64)))

	for _, p := range candidate.Pieces {
		exposed := p.Exposed()
		h.out.Printf("%s (%d found)", pieceStyle.Render(p.Fragment()), p.Len())
		if len(exposed) == 0 {
			h.out.Print(dimStyle.Render("   no associations"))
			continue
		}
		for i, a := range exposed {
			def := ""
			if a.HasDefinition() {
				def = " [def]"
			}
			h.out.Printf("%2d. %-20s sim %.2f  freq %.4f%s",
				i+1, wordStyle.Render(a.Name()), a.Similarity(), a.Frequency(), def)
		}
	}
}

// ShowEntry prints the closest real word, with its definitions when definitions is set.
func (h *InputHandler) ShowEntry(ctx context.Context, word string, definitions bool) {
	if !utils.IsAlphaWord(word) {
		h.out.Errorf("Not a word: %q", word)
		return
	}

	entry, err := h.lookup.Closest(ctx, word)
	if err != nil {
		h.out.Errorf("Lookup failed for '%s': %v", word, err)
		return
	}

	h.out.Print(wordStyle.Render(entry.Word))
	if !definitions {
		return
	}
	if len(entry.Definitions) == 0 {
		h.out.Print(dimStyle.Render("   no definitions"))
		return
	}
	for i, d := range entry.Definitions {
		pos, text, found := strings.Cut(d, "\t")
		if !found {
			pos, text = "", d
		}
		h.out.Printf("%2d. %s %s", i+1, dimStyle.Render(pos), text)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
