package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// SetColorMode applies auto|always|never to every lipgloss render.
// auto honors NO_COLOR and otherwise trusts termenv's detection.
func SetColorMode(mode string) {
	switch strings.ToLower(mode) {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	default:
		if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
			lipgloss.SetColorProfile(termenv.Ascii)
			return
		}
		lipgloss.SetColorProfile(termenv.ColorProfile())
	}
}

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render(current.SymDone+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render("✖ "+msg))
}
