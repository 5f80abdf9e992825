package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/decker502/ghosthorror/pkg/config"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8a2be2")).
			Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#8b0000")).Padding(0, 2)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd75f"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff0000"))
)

// banner 启动横幅
func banner(s config.Settings, mode string, warnings []string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("GHOST HORROR MODE"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("program:"), strings.Join(append([]string{s.Program}, s.ProgramArgs...), " "))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("mode:   "), mode)
	for _, w := range warnings {
		b.WriteString(warnStyle.Render("warning: "+w) + "\n")
	}
	return b.String()
}

func printBanner(w io.Writer, s config.Settings, mode string, warnings []string) {
	fmt.Fprint(w, banner(s, mode, warnings))
}
