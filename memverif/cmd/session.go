package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/memverif/sim"
	"github.com/sarchlab/memverif/tracing"
	"github.com/sarchlab/memverif/verif"
)

// newTraceWriter selects a trace writer by format, or by the extension of
// path when the format is empty.
func newTraceWriter(path, format, timeUnit string) (tracing.TraceWriter, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			format = "csv"
		case ".sqlite", ".sqlite3", ".db":
			format = "sqlite"
		default:
			format = "vcd"
		}
	}

	switch strings.ToLower(format) {
	case "vcd":
		return tracing.NewVCDTraceWriter(path, timeUnit), nil
	case "csv":
		return tracing.NewCSVTraceWriter(path), nil
	case "sqlite":
		return tracing.NewSQLiteTraceWriter(path), nil
	default:
		return nil, errors.Errorf("unknown trace format %q", format)
	}
}

// exitCode maps the outcome of a run to the process exit status.
func exitCode(result *verif.Result, err error) int {
	if err != nil {
		return ExitConfigError
	}

	if verif.Judge(result) == verif.VerdictFail {
		return ExitMismatch
	}

	return ExitPass
}

// runScript builds a bench for the script, with the reporters and tracers the
// flags ask for, and runs it. A trace that cannot be written is skipped.
func runScript(cmd *cobra.Command, script verif.Script) (*verif.Result, error) {
	text := verif.NewTextReporter(os.Stdout)
	if GetFlag(cmd, "no-color") {
		text = text.WithColor(false)
	}

	bench, err := verif.MakeBuilder().
		WithReporter(text).
		WithReporter(verif.NewLogReporter(log.StandardLogger())).
		Build("Bench", script)
	if err != nil {
		return nil, err
	}

	if GetFlag(cmd, "log-events") {
		bench.Engine.AcceptHook(sim.NewEventLogger(log.StandardLogger()))
	}

	if path := GetString(cmd, "trace"); path != "" {
		err := attachTracer(bench, path, GetString(cmd, "trace-format"),
			script.Config.TimeUnit)
		if err != nil {
			log.Warnf("running without a trace: %v", err)
		}
	}

	return bench.Run()
}

func attachTracer(bench *verif.Bench, path, format, timeUnit string) error {
	writer, err := newTraceWriter(path, format, timeUnit)
	if err != nil {
		return err
	}

	tracer, err := tracing.NewSignalTracer(bench.Engine, writer,
		tracing.BenchSignals(bench.Clock, bench.RAM))
	if err != nil {
		return err
	}

	tracing.CollectSignals(tracer, bench.Clock, bench.Sequencer)
	bench.Engine.RegisterSimulationEndHandler(tracer)

	log.WithField("path", path).Info("tracing signals")

	return nil
}
