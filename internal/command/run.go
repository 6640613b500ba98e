package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/joeycumines/btagent/internal/bt"
	"github.com/joeycumines/btagent/internal/config"
	"github.com/joeycumines/btagent/internal/tree"
)

// RunCommand ticks the guard tree through a scenario and prints every leaf
// emission and tick result.
type RunCommand struct {
	*BaseCommand
	config *config.Config

	scenarioPath string
	logLevel     string
	logFile      string
	traceFile    string
	color        string
	quiet        bool
	quietSet     bool
}

// NewRunCommand creates a new run command.
func NewRunCommand(cfg *config.Config) *RunCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &RunCommand{
		BaseCommand: NewBaseCommand(
			"run",
			"Run the guard behavior tree through a scenario",
			"run [options]",
		),
		config: cfg,
	}
}

// SetupFlags configures the flags for the run command.
func (c *RunCommand) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.scenarioPath, "scenario", "", "Scenario file (YAML); defaults to the built-in guard scenario")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&c.logFile, "log-file", "", "Write JSON logs to this file instead of stderr")
	fs.StringVar(&c.traceFile, "trace-file", "", "Write tick trace spans (JSON) to this file")
	fs.StringVar(&c.color, "color", "", "Color mode: auto, always, never")
	fs.BoolFunc("quiet", "Print tick results only", func(s string) error {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		c.quiet, c.quietSet = v, true
		return nil
	})
}

// Execute runs the scenario. A failed expectation is reported and returned
// as an error.
func (c *RunCommand) Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}

	for _, w := range c.config.Warnings {
		_, _ = fmt.Fprintf(stderr, "Warning: config: %s\n", w)
	}

	schema := config.DefaultSchema()

	lc, err := resolveLogConfig(c.logFile, c.logLevel, c.config)
	if err != nil {
		return err
	}
	if lc.logFile != nil {
		defer lc.logFile.Close()
	}
	logger := lc.logger(stderr)
	defer setDefaultLogger(logger)()

	tc, err := resolveTraceConfig(c.traceFile, c.config)
	if err != nil {
		return err
	}
	defer func() {
		if err := tc.shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("[Run] trace shutdown failed", "error", err)
		}
	}()

	colorMode := c.color
	if colorMode == "" {
		colorMode = schema.ResolveCommand(c.config, c.Name(), "color")
	}
	colored, err := resolveColor(colorMode, stdout)
	if err != nil {
		return err
	}
	styles := newConsoleStyles(colored)

	quiet := c.quiet
	if !c.quietSet {
		quiet, _ = config.ParseBool(schema.ResolveCommand(c.config, c.Name(), "quiet"))
	}

	scenario := tree.DefaultScenario()
	scenarioPath := c.scenarioPath
	if scenarioPath == "" {
		scenarioPath = schema.ResolveCommand(c.config, c.Name(), "scenario")
	}
	if scenarioPath != "" {
		if scenario, err = tree.LoadScenario(scenarioPath); err != nil {
			return err
		}
	}

	emitter := bt.Discard
	if !quiet {
		emitter = consoleEmitter(stdout, styles)
	}

	bb := new(bt.Blackboard)
	t := tree.New(tree.NewGuard(bb, emitter), bb,
		tree.WithLogger(logger),
		tree.WithTracerProvider(tc.tracerProvider()),
		tree.WithTickObserver(func(r tree.TickResult) {
			_, _ = fmt.Fprintf(stdout, "Tick %d result: %s\n", r.Seq, styles.state(r.State))
		}),
	)

	logger.Info("[Run] starting scenario", "name", scenario.Name, "ticks", len(scenario.Ticks))
	results, err := scenario.Run(ctx, t)
	if err != nil {
		if errors.Is(err, tree.ErrUnexpectedState) {
			_, _ = fmt.Fprintf(stderr, "Scenario failed: %v\n", err)
		}
		return err
	}
	logger.Info("[Run] scenario complete", "name", scenario.Name, "ticks", len(results))
	return nil
}
