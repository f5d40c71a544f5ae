// Command voicefx applies a voice effect preset to a WAV file.
//
// Usage:
//
//	voicefx --in in.wav --out out.wav [flags]
//
// The input is mixed down to mono. The output is peak normalized and
// written in the chosen sample format.
//
// Examples:
//
//	voicefx --list
//	voicefx -i speech.wav -o robot.wav --fx robot_bass
//	voicefx -i speech.wav -o anon.wav --fx anonymous --fx-config anon.json --format ulaw
//	voicefx -i speech.wav -o slow.wav --speed 0.9 --dbfs -1
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-voicefx/dsp/audio/wav"
	"github.com/cwbudde/algo-voicefx/dsp/pipeline"
	"github.com/cwbudde/algo-voicefx/measure/loudness"
	timestats "github.com/cwbudde/algo-voicefx/stats/time"
)

var version = "0.1.0"

// defaultFXConfig is read for configurable presets when --fx-config is not
// given. A missing file is not an error.
const defaultFXConfig = "fx_presets/anonymous.json"

// CLI defines the command-line interface.
type CLI struct {
	In       string  `short:"i" type:"existingfile" help:"Input WAV file."`
	Out      string  `short:"o" type:"path" help:"Output WAV file."`
	FX       string  `name:"fx" default:"none" help:"Effect preset (see --list)."`
	FXConfig string  `name:"fx-config" type:"path" help:"JSON overrides for configurable presets."`
	Speed    float64 `default:"1" help:"Time-stretch rate: <1 slower, >1 faster."`
	Peak     float64 `default:"0.95" help:"Output peak level, linear."`
	DBFS     string  `name:"dbfs" placeholder:"DB" help:"Output peak level in dBFS. Overrides --peak."`
	Format   string  `default:"pcm16" enum:"pcm16,pcm24,ulaw,alaw" help:"Output sample format."`
	List     bool    `short:"l" help:"List presets and exit."`
	Verbose  bool    `help:"Log pipeline stages."`
	Version  bool    `short:"v" help:"Show version information."`
}

func main() {
	cliArgs := &CLI{}
	kctx := kong.Parse(cliArgs,
		kong.Name("voicefx"),
		kong.Description("Voice effect presets for speech recordings"),
		kong.UsageOnError(),
		kong.Help(styledHelpPrinter()),
	)

	if cliArgs.Version {
		printVersion(version)
		os.Exit(0)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	if cliArgs.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	p, err := pipeline.New(pipeline.WithLogger(logger))
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	if cliArgs.List {
		listPresets(os.Stdout, p.Catalog())
		os.Exit(0)
	}

	if cliArgs.In == "" || cliArgs.Out == "" {
		printError("--in and --out are required")
		kctx.PrintUsage(false)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cliArgs, p, logger); err != nil {
		printError(err.Error())
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cliArgs *CLI, p *pipeline.Pipeline, logger logrus.FieldLogger) error {
	enc, err := wav.ParseEncoding(cliArgs.Format)
	if err != nil {
		return err
	}

	target, err := normalizeTarget(cliArgs)
	if err != nil {
		return err
	}

	in, err := wav.ReadFile(cliArgs.In)
	if err != nil {
		return err
	}

	req := pipeline.Request{
		Buffer: in,
		Preset: cliArgs.FX,
		Speed:  cliArgs.Speed,
		Target: target,
	}

	if preset, ok := p.Catalog().Lookup(cliArgs.FX); ok && preset.Configurable() {
		req.Overrides = loadOverrides(cliArgs.FXConfig, logger)
	}

	res, err := p.Run(ctx, req)
	if err != nil {
		return err
	}

	if err := wav.WriteFile(cliArgs.Out, res.Buffer, enc); err != nil {
		return err
	}

	lufs, err := loudness.Measure(res.Buffer.Samples, float64(res.Buffer.SampleRate))
	if err != nil {
		logger.WithError(err).Debug("loudness not measured")

		lufs.Integrated = math.Inf(-1)
	}

	printSummary(summary{
		preset:    res.Preset,
		out:       cliArgs.Out,
		format:    enc.String(),
		sampleRt:  res.Buffer.SampleRate,
		inDur:     in.Duration(),
		outDur:    res.Buffer.Duration(),
		level:     timestats.Measure(res.Buffer.Samples),
		lufs:      lufs.Integrated,
		recovered: len(res.Recovered),
	})

	return nil
}

func normalizeTarget(cliArgs *CLI) (pipeline.NormalizeTarget, error) {
	if cliArgs.DBFS == "" {
		return pipeline.Peak(cliArgs.Peak), nil
	}

	db, err := strconv.ParseFloat(cliArgs.DBFS, 64)
	if err != nil {
		return pipeline.NormalizeTarget{}, fmt.Errorf("invalid --dbfs %q: %w", cliArgs.DBFS, err)
	}

	return pipeline.DBFS(db), nil
}

// loadOverrides reads the explicit config, then the default one. Unreadable
// or malformed files are logged and the preset runs on its defaults.
func loadOverrides(path string, logger logrus.FieldLogger) pipeline.Overrides {
	for _, candidate := range []string{path, defaultFXConfig} {
		if candidate == "" {
			continue
		}

		o, err := pipeline.LoadOverrides(candidate)
		if err == nil {
			logger.WithFields(logrus.Fields{"path": candidate, "keys": o.Keys()}).Debug("loaded overrides")
			return o
		}

		if errors.Is(err, fs.ErrNotExist) {
			if candidate == path {
				logger.WithField("path", candidate).Warn("override file not found")
			}

			continue
		}

		logger.WithError(err).Warn("ignoring override file")

		return pipeline.Overrides{}
	}

	return pipeline.Overrides{}
}

func listPresets(out io.Writer, c *pipeline.Catalog) {
	fmt.Fprintln(out, titleStyle.Render("Presets"))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range c.Names() {
		preset, _ := c.Lookup(name)

		mark := ""
		if preset.Configurable() {
			mark = " (configurable)"
		}

		if rate := preset.MinSampleRate(); rate > 0 {
			mark += fmt.Sprintf(" [>= %d Hz]", rate)
		}

		fmt.Fprintf(w, "  %s\t%s%s\n", valueStyle.Render(name), preset.Description, mark)
	}

	w.Flush()
}
