package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	uispec "github.com/goliatone/go-uispec"
	"github.com/goliatone/go-uispec/internal/prompt"
	"github.com/goliatone/go-uispec/internal/server"
	"github.com/goliatone/go-uispec/pkg/intent"
	"github.com/goliatone/go-uispec/pkg/validation"
)

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pipeline, gen, err := a.pipeline(ctx, true)
			if err != nil {
				return err
			}
			registry, err := uispec.NewRegistry()
			if err != nil {
				return err
			}
			srv, err := server.New(
				server.WithLogger(a.logger),
				server.WithOrchestrator(pipeline),
				server.WithExtractor(intent.NewExtractor(gen)),
				server.WithRegistry(registry),
				server.WithDefaultRenderer(a.cfg.Renderer),
				server.WithRenderOptions(a.renderOptions()),
			)
			if err != nil {
				return err
			}
			addr := a.cfg.Listen
			if listen != "" {
				addr = listen
			}
			a.logger.Info("starting server",
				zap.String("provider", string(a.cfg.Provider)),
				zap.String("model", a.cfg.Model),
				zap.Int("media", a.catalog.Len()),
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (config default when empty)")
	return cmd
}

func newBuildCmd(a *app) *cobra.Command {
	var (
		in       intentFlags
		output   string
		renderer string
		report   bool
	)
	cmd := &cobra.Command{
		Use:   "build [candidate.json|-]",
		Short: "Turn candidate JSON into a valid document",
		Long: `Runs the candidate through normalization, media gating, and validation.
The command never fails on a bad candidate: the fallback document is printed
instead and --report shows which recovery fired.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			raw, err := readInput(cmd, path)
			if err != nil {
				return fmt.Errorf("read candidate: %w", err)
			}
			intentValue, err := in.resolve()
			if err != nil {
				return err
			}
			pipeline, _, err := a.pipeline(cmd.Context(), false)
			if err != nil {
				return err
			}
			spec, rep := pipeline.BuildWithReport(string(raw), intentValue)
			if report {
				if err := writeReport(cmd, rep); err != nil {
					return err
				}
			}
			return a.emit(cmd, spec, renderer, output)
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout when empty)")
	cmd.Flags().StringVarP(&renderer, "renderer", "r", "", "Render with this renderer instead of printing JSON")
	cmd.Flags().BoolVar(&report, "report", false, "Print the pipeline report to stderr")
	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		in          intentFlags
		output      string
		renderer    string
		report      bool
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Ask the content generator for a document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pipeline, gen, err := a.pipeline(ctx, true)
			if err != nil {
				return err
			}

			var intentValue intent.Intent
			if interactive {
				intentValue, err = collectInteractive(ctx, prompt.NewSurveyDriver(os.Stderr), gen)
			} else {
				intentValue, err = in.resolve()
			}
			if err != nil {
				return err
			}

			spec, rep, genErr := pipeline.Generate(ctx, intentValue)
			if report {
				if err := writeReport(cmd, rep); err != nil {
					return err
				}
			}
			if err := a.emit(cmd, spec, renderer, output); err != nil {
				return err
			}
			if genErr != nil && !a.allowFallback {
				return fmt.Errorf("generation failed, fallback document emitted: %w", genErr)
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout when empty)")
	cmd.Flags().StringVarP(&renderer, "renderer", "r", "", "Render with this renderer instead of printing JSON")
	cmd.Flags().BoolVar(&report, "report", false, "Print the pipeline report to stderr")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Collect a brief in the terminal")
	return cmd
}

// collectInteractive asks for a free-text brief and extracts the intent,
// falling back to field-by-field prompts when extraction fails.
func collectInteractive(ctx context.Context, driver prompt.Driver, gen intent.Generator) (intent.Intent, error) {
	brief, err := prompt.CollectBrief(ctx, driver)
	if err != nil {
		return intent.Intent{}, err
	}
	extracted, err := intent.NewExtractor(gen).Extract(ctx, brief)
	if err == nil {
		return extracted, nil
	}
	_ = driver.Info(ctx, fmt.Sprintf("Could not extract an intent (%v). Fill it in directly.", err))
	return prompt.CollectIntent(ctx, driver)
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		output   string
		renderer string
	)
	cmd := &cobra.Command{
		Use:   "render [spec.json|-]",
		Short: "Render a validated document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			raw, err := readInput(cmd, path)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			spec, err := validation.Validate(raw)
			if err != nil {
				return err
			}
			name := renderer
			if name == "" {
				name = a.cfg.Renderer
			}
			return a.emit(cmd, spec, name, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout when empty)")
	cmd.Flags().StringVarP(&renderer, "renderer", "r", "", "Renderer name (config default when empty)")
	return cmd
}

func newCatalogCmd(a *app) *cobra.Command {
	var in intentFlags
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List media catalog entries, ranked against an intent when given",
		RunE: func(cmd *cobra.Command, _ []string) error {
			intentValue, err := in.resolve()
			if err != nil {
				return err
			}
			ranked := a.catalog.Rank(intentValue.Corpus())
			rows := make([][]string, 0, len(ranked))
			for _, item := range ranked {
				rows = append(rows, []string{item.Entry.ID, strconv.Itoa(item.Score), item.Entry.URL})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Score", "URL"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return err
		},
	}
	in.register(cmd)
	return cmd
}
