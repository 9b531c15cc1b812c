package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-uispec/pkg/fallback"
	"github.com/goliatone/go-uispec/pkg/generation"
	"github.com/goliatone/go-uispec/pkg/intent"
	"github.com/goliatone/go-uispec/pkg/media"
	"github.com/goliatone/go-uispec/pkg/model"
	"github.com/goliatone/go-uispec/pkg/normalize"
	"github.com/goliatone/go-uispec/pkg/validation"
)

// DefaultTimeout bounds a single Generate call when the caller's context has
// no earlier deadline.
const DefaultTimeout = 45 * time.Second

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLogger sets the logger used to record recoveries.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithCatalog gates media against catalog instead of the embedded default.
func WithCatalog(catalog *media.Catalog) Option {
	return func(o *Orchestrator) {
		o.resolver = media.NewResolver(catalog)
	}
}

// WithResolver injects a media resolver.
func WithResolver(resolver *media.Resolver) Option {
	return func(o *Orchestrator) {
		o.resolver = resolver
	}
}

// WithGenerator sets the content generator used by Generate.
func WithGenerator(generator generation.Generator) Option {
	return func(o *Orchestrator) {
		o.generator = generator
	}
}

// WithPromptBuilder overrides the prompt builder used by Generate.
func WithPromptBuilder(builder *generation.PromptBuilder) Option {
	return func(o *Orchestrator) {
		o.prompts = builder
	}
}

// WithTimeout bounds each Generate call. Non-positive values disable the
// orchestrator's own deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = timeout
		o.timeoutSet = true
	}
}

// WithFallbackOptions configures the synthesized fallback document.
func WithFallbackOptions(opts ...fallback.Option) Option {
	return func(o *Orchestrator) {
		o.fallbackOpts = append(o.fallbackOpts, opts...)
	}
}

// Orchestrator runs the document pipeline. It holds no per-request state and
// is safe for concurrent use.
type Orchestrator struct {
	logger       *zap.Logger
	resolver     *media.Resolver
	generator    generation.Generator
	prompts      *generation.PromptBuilder
	timeout      time.Duration
	timeoutSet   bool
	fallbackOpts []fallback.Option
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies default to the embedded media catalog and a no-op logger.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.resolver == nil {
		o.resolver = media.NewResolver(media.Default())
	}
	if o.prompts == nil {
		o.prompts = generation.NewPromptBuilder(o.resolver.Catalog())
	}
	if !o.timeoutSet {
		o.timeout = DefaultTimeout
	}
}

// Catalog returns the media catalog the pipeline gates against.
func (o *Orchestrator) Catalog() *media.Catalog {
	return o.resolver.Catalog()
}

// Fallback returns the fallback document for in.
func (o *Orchestrator) Fallback(in intent.Intent) model.UiSpec {
	return fallback.Build(in, o.fallbackOpts...)
}

// Build turns raw candidate text into a valid document. It never fails: every
// rejected candidate is replaced by the fallback document.
func (o *Orchestrator) Build(raw string, in intent.Intent) model.UiSpec {
	spec, _ := o.BuildWithReport(raw, in)
	return spec
}

// BuildWithReport is Build plus a Report describing the recovery taken.
func (o *Orchestrator) BuildWithReport(raw string, in intent.Intent) (model.UiSpec, Report) {
	report := Report{Recovery: RecoveryNone}

	tree, err := parseCandidate(raw)
	if err != nil {
		report.Recovery = RecoveryMalformedInput
		o.logger.Debug("candidate is not a JSON object, continuing with empty document", zap.Error(err))
	}

	doc := normalize.EnsureStage(tree)
	components, _ := doc["components"].([]any)
	if len(components) == 0 {
		if report.Recovery == RecoveryNone {
			report.Recovery = RecoveryDegenerateDocument
			o.logger.Warn("candidate has no components")
		}
		return o.fallback(in, report)
	}

	report.Media = resolveMedia(components, o.resolver.For(in))
	for _, decision := range report.Media {
		o.logger.Debug("media degraded to placeholder",
			zap.String("path", decision.Path),
			zap.String("id", decision.RequestedID),
			zap.String("reason", string(decision.Reason)),
			zap.Int("score", decision.Score),
		)
	}

	style := model.DefaultStyle()
	doc["style"] = map[string]any{"bg": style.Background, "radius": style.Radius}

	spec, err := validation.Validate(doc)
	if err != nil {
		report.Recovery = RecoverySchemaViolation
		report.Issues = validation.IssuesOf(err)
		paths := make([]string, 0, len(report.Issues))
		for _, issue := range report.Issues {
			paths = append(paths, issue.String())
		}
		o.logger.Warn("candidate failed validation", zap.Strings("issues", paths))
		return o.fallback(in, report)
	}

	if reason := degenerate(spec); reason != "" {
		report.Recovery = RecoveryDegenerateDocument
		o.logger.Warn("candidate is degenerate", zap.String("reason", reason))
		return o.fallback(in, report)
	}

	report.Layout = spec.Layout
	return spec, report
}

// Generate asks the content generator for a candidate and builds it. When no
// candidate can be obtained the fallback document is returned together with
// an *UpstreamError so callers can decide whether to surface the failure.
func (o *Orchestrator) Generate(ctx context.Context, in intent.Intent) (model.UiSpec, Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	raw, err := o.requestCandidate(ctx, in)
	if err != nil {
		upstream := &UpstreamError{Err: err}
		o.logger.Error("content generation failed", zap.Error(err))
		spec, report := o.fallback(in, Report{Recovery: RecoveryUpstreamFailure})
		return spec, report, upstream
	}

	spec, report := o.BuildWithReport(raw, in)
	return spec, report, nil
}

func (o *Orchestrator) requestCandidate(ctx context.Context, in intent.Intent) (string, error) {
	if o.generator == nil {
		return "", errors.New("orchestrator: generator is not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prompt, err := o.prompts.Build(in)
	if err != nil {
		return "", fmt.Errorf("orchestrator: build prompt: %w", err)
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := o.generator.Generate(ctx, prompt.System, prompt.User)
		done <- result{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (o *Orchestrator) fallback(in intent.Intent, report Report) (model.UiSpec, Report) {
	spec := o.Fallback(in)
	report.Fallback = true
	report.Layout = spec.Layout
	return spec, report
}

func parseCandidate(raw string) (map[string]any, error) {
	var tree any
	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		return map[string]any{}, err
	}
	doc, ok := tree.(map[string]any)
	if !ok {
		return map[string]any{}, fmt.Errorf("orchestrator: candidate root is %T, not an object", tree)
	}
	return doc, nil
}

// degenerate reports why a validated document cannot be shown, or "". Every
// Card in the document is checked, including ones beside the root Stage,
// since the renderer draws every root component.
func degenerate(spec model.UiSpec) string {
	if len(spec.Cards()) == 0 {
		return "no card under the root stage"
	}
	reason := ""
	model.Walk(spec.Components, func(n model.Node) bool {
		if n.Kind == model.KindCard && !model.CardResolves(n) {
			reason = "card without title, body, or cta"
			return false
		}
		return true
	})
	return reason
}
