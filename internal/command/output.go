package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/joeycumines/btagent/internal/bt"
	"golang.org/x/term"
)

// consoleStyles renders run output. The zero value renders plain text.
type consoleStyles struct {
	enabled bool
	action  lipgloss.Style
	message lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	running lipgloss.Style
}

func newConsoleStyles(enabled bool) consoleStyles {
	if !enabled {
		return consoleStyles{}
	}
	return consoleStyles{
		enabled: true,
		action:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		message: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Italic(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		running: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	}
}

func (s consoleStyles) emission(e bt.Emission) string {
	if !s.enabled {
		return e.String()
	}
	switch e.Kind {
	case bt.KindAction:
		return s.action.Render(e.String())
	case bt.KindMessage:
		return s.message.Render(e.String())
	default:
		return e.String()
	}
}

func (s consoleStyles) state(state bt.NodeState) string {
	if !s.enabled {
		return state.String()
	}
	switch state {
	case bt.Success:
		return s.success.Render(state.String())
	case bt.Running:
		return s.running.Render(state.String())
	default:
		return s.failure.Render(state.String())
	}
}

// consoleEmitter writes one line per emission.
func consoleEmitter(w io.Writer, styles consoleStyles) bt.Emitter {
	return bt.EmitterFunc(func(e bt.Emission) {
		_, _ = fmt.Fprintln(w, styles.emission(e))
	})
}

// resolveColor decides whether to style output written to w. "auto" styles
// only terminals, and honours NO_COLOR.
func resolveColor(mode string, w io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid color mode: %s", mode)
	}
}
