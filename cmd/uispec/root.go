package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	uispec "github.com/goliatone/go-uispec"
	"github.com/goliatone/go-uispec/internal/config"
	"github.com/goliatone/go-uispec/pkg/fallback"
	"github.com/goliatone/go-uispec/pkg/generation"
	"github.com/goliatone/go-uispec/pkg/intent"
	"github.com/goliatone/go-uispec/pkg/media"
	"github.com/goliatone/go-uispec/pkg/orchestrator"
	"github.com/goliatone/go-uispec/pkg/render"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath    string
	verbose       bool
	provider      string
	model         string
	catalogPath   string
	timeout       time.Duration
	allowFallback bool

	logger  *zap.Logger
	cfg     config.Config
	catalog *media.Catalog
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "uispec",
		Short:         "Build, generate, and render UiSpec documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&a.provider, "provider", "", "Content generator: openai, gemini, or static")
	flags.StringVar(&a.model, "model", "", "Model name passed to the provider")
	flags.StringVar(&a.catalogPath, "catalog", "", "Media catalog file or directory (embedded catalog when empty)")
	flags.DurationVar(&a.timeout, "timeout", 0, "Generation timeout (config default when zero)")
	flags.BoolVar(&a.allowFallback, "allow-fallback", false, "Exit zero when generation failed and the fallback document was used")

	root.AddCommand(
		newServeCmd(a),
		newBuildCmd(a),
		newGenerateCmd(a),
		newRenderCmd(a),
		newCatalogCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.logger == nil {
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if a.verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.provider != "" {
		cfg.Provider = generation.Provider(strings.ToLower(a.provider))
		if cmd.Flags().Changed("provider") && a.model == "" {
			cfg.Model = ""
		}
	}
	if a.model != "" {
		cfg.Model = a.model
	}
	if a.catalogPath != "" {
		cfg.Catalog = a.catalogPath
	}
	if a.timeout > 0 {
		cfg.Timeout = a.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	catalog, err := uispec.LoadCatalog(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	a.catalog = catalog
	return nil
}

// pipeline builds the orchestrator. withGenerator is false for commands that
// never call the provider.
func (a *app) pipeline(ctx context.Context, withGenerator bool) (*orchestrator.Orchestrator, generation.Generator, error) {
	opts := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithCatalog(a.catalog),
		orchestrator.WithTimeout(a.cfg.Timeout),
		orchestrator.WithFallbackOptions(fallback.WithDefaultAction(a.cfg.Action())),
	}
	if !withGenerator {
		return orchestrator.New(opts...), nil, nil
	}

	providerCfg, err := a.cfg.Generation()
	if err != nil {
		return nil, nil, err
	}
	gen, err := generation.NewGenerator(ctx, providerCfg)
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, orchestrator.WithGenerator(gen))
	return orchestrator.New(opts...), gen, nil
}

func (a *app) renderOptions() render.RenderOptions {
	return render.RenderOptions{Catalog: a.catalog}
}

// intentFlags are shared by commands that need an intent.
type intentFlags struct {
	path   string
	goal   string
	title  string
	body   string
	cta    string
	tone   string
	layout string
}

func (f *intentFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.path, "intent", "", "Intent JSON file")
	flags.StringVar(&f.goal, "goal", "", "Intent goal")
	flags.StringVar(&f.title, "title", "", "Intent title")
	flags.StringVar(&f.body, "body", "", "Intent body")
	flags.StringVar(&f.cta, "cta", "", "Intent call to action")
	flags.StringVar(&f.tone, "tone", "", "Intent tone")
	flags.StringVar(&f.layout, "layout", "", "Layout hint")
}

// resolve reads the intent file, then lets individual flags override fields.
func (f *intentFlags) resolve() (intent.Intent, error) {
	in := intent.Intent{Tone: intent.ToneNeutral}
	if f.path != "" {
		data, err := os.ReadFile(f.path)
		if err != nil {
			return intent.Intent{}, fmt.Errorf("read intent: %w", err)
		}
		decoded, err := intent.Decode(data)
		if err != nil {
			return intent.Intent{}, fmt.Errorf("decode intent: %w", err)
		}
		in = decoded
	}
	set := func(target *string, value string) {
		if value = strings.TrimSpace(value); value != "" {
			*target = value
		}
	}
	set(&in.Goal, f.goal)
	set(&in.Title, f.title)
	set(&in.Body, f.body)
	set(&in.CTA, f.cta)
	set(&in.Layout, f.layout)
	if f.tone != "" {
		in.Tone = intent.ParseTone(f.tone)
	}
	return in, nil
}

// readInput reads path, or stdin when path is "-" or empty.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func writeReport(cmd *cobra.Command, report orchestrator.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.ErrOrStderr(), string(data))
	return err
}

// emit renders spec with rendererName, or prints the document JSON when no
// renderer is named.
func (a *app) emit(cmd *cobra.Command, spec uispec.UiSpec, rendererName, output string) error {
	if rendererName == "" {
		data, err := json.MarshalIndent(spec, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(cmd, output, append(data, '\n'))
	}
	registry, err := uispec.NewRegistry()
	if err != nil {
		return err
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return err
	}
	data, err := renderer.Render(cmd.Context(), spec, a.renderOptions())
	if err != nil {
		return err
	}
	return writeOutput(cmd, output, data)
}
