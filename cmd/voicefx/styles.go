package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	timestats "github.com/cwbudde/algo-voicefx/stats/time"
)

var (
	primaryColor = lipgloss.Color("#5F5FD7")
	accentColor  = lipgloss.Color("#FFA500")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#D70000"))

	warnStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(10)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	flagStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AA00"))

	defaultStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(mutedColor)
)

type summary struct {
	preset    string
	out       string
	format    string
	sampleRt  int
	inDur     time.Duration
	outDur    time.Duration
	level     timestats.Level
	lufs      float64
	recovered int
}

func printVersion(v string) {
	fmt.Println(titleStyle.Render("voicefx"))
	fmt.Printf("%s %s\n", keyStyle.Render("Version:"), valueStyle.Render(v))
}

func printError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("Error:"), message)
}

func printSummary(s summary) {
	row := func(key, value string) {
		fmt.Printf("  %s %s\n", keyStyle.Render(key), valueStyle.Render(value))
	}

	fmt.Println(titleStyle.Render("voicefx"))
	row("preset", s.preset)
	row("output", s.out)
	row("format", fmt.Sprintf("%s, %d Hz", s.format, s.sampleRt))
	row("duration", fmt.Sprintf("%s -> %s", s.inDur.Round(time.Millisecond), s.outDur.Round(time.Millisecond)))
	row("peak", fmt.Sprintf("%.4f (%.2f dBFS)", s.level.Peak, s.level.PeakDB))
	row("rms", fmt.Sprintf("%.2f dBFS", s.level.RMSDB))
	row("loudness", fmt.Sprintf("%.1f LUFS", s.lufs))

	if s.recovered > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("  %d external stage(s) skipped, see log", s.recovered)))
	}
}

func styledHelpPrinter() kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		sb.WriteString(titleStyle.Render("voicefx"))
		sb.WriteString("\n")
		sb.WriteString(ctx.Model.Help)
		sb.WriteString("\n")

		sb.WriteString(sectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(ctx.Model.Name + " --in FILE --out FILE [flags]")
		sb.WriteString("\n")

		sb.WriteString(sectionStyle.Render("Flags:"))
		sb.WriteString("\n")

		for _, f := range ctx.Model.Node.Flags {
			name := "--" + f.Name
			if f.Short != 0 {
				name = fmt.Sprintf("-%c, %s", f.Short, name)
			}

			sb.WriteString("  ")
			sb.WriteString(flagStyle.Render(name))

			if f.Help != "" {
				sb.WriteString("  ")
				sb.WriteString(f.Help)
			}

			if f.HasDefault {
				sb.WriteString(" ")
				sb.WriteString(defaultStyle.Render("(default: " + f.Default + ")"))
			}

			sb.WriteString("\n")
		}

		fmt.Fprint(ctx.Stdout, sb.String())

		return nil
	}
}
