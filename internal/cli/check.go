package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/ghosthorror/internal/grab"
	"github.com/decker502/ghosthorror/internal/launcher"
	"github.com/decker502/ghosthorror/pkg/config"
	"github.com/decker502/ghosthorror/pkg/render"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the program, a terminal emulator and a display are available",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadViper(cmd.Flags())
		if err != nil {
			return err
		}
		s, err := config.DecodeSettings(v)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		l := launcher.New(launcher.Options{Program: s.Program, Terminal: s.Terminal})
		ok, msg := l.CheckRequirements()
		if ok {
			fmt.Fprintln(out, okStyle.Render("ok   ")+msg)
		} else {
			fmt.Fprintln(out, errorStyle.Render("fail ")+msg)
		}

		switch {
		case grab.IsX11(nil):
			fmt.Fprintln(out, okStyle.Render("ok   ")+"X11 session, keyboard grab available")
		case grab.HasDisplay(nil):
			fmt.Fprintln(out, warnStyle.Render("warn ")+"not running on X11, keyboard grab disabled")
		default:
			fmt.Fprintln(out, warnStyle.Render("warn ")+"no display, terminal mode only")
		}

		if path, found := render.FindHorrorFont(render.DefaultFontDirs()); found {
			fmt.Fprintln(out, okStyle.Render("ok   ")+"horror font "+path)
		} else {
			fmt.Fprintln(out, warnStyle.Render("warn ")+"no horror font found, using Go Bold")
		}

		if _, err := config.LoadTimelineConfig(s.Timeline); err != nil {
			fmt.Fprintln(out, errorStyle.Render("fail ")+err.Error())
			return err
		}

		if !ok {
			return fmt.Errorf("requirements not met")
		}
		return nil
	},
}
