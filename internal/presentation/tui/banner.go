package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintBanner writes the startup banner for a watching daemon.
func PrintBanner(w io.Writer, version, mode, socket string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	s1 := out.String("        _ _   _        _     ").Foreground(p.Color("#818cf8"))
	s2 := out.String("   __ _| | |_| |_ __ _| |__  ").Foreground(p.Color("#a78bfa"))
	s3 := out.String("  / _` | | __| __/ _` | '_ \\ ").Foreground(p.Color("#c084fc"))
	s4 := out.String(" | (_| | | |_| || (_| | |_) |").Foreground(p.Color("#e879f9"))
	s5 := out.String("  \\__,_|_|\\__|\\__\\__,_|_.__/ ").Foreground(p.Color("#f472b6"))

	fmt.Fprintln(w)
	for _, s := range []termenv.Style{s1, s2, s3, s4, s5} {
		fmt.Fprintln(w, s)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  v%s  %s  %s\n\n", strings.TrimSpace(version), mode, out.String(socket).Faint())
}
