package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/brokerseo/internal/content"
	"github.com/nao1215/brokerseo/internal/filter"
	"github.com/nao1215/brokerseo/internal/model"
	"github.com/nao1215/brokerseo/internal/rank"
)

// ErrNoSource is returned by FilterStep when it has no broker source.
var ErrNoSource = errors.New("no broker source configured")

// BrokerSource provides the full broker catalog.
// *catalog.Catalog satisfies this interface.
type BrokerSource interface {
	Brokers() []model.Broker
}

// FilterStep keeps the brokers that satisfy the page's filters.
type FilterStep struct {
	source BrokerSource
	policy filter.Policy
	logger *slog.Logger
}

// FilterStepOption configures a FilterStep.
type FilterStepOption func(*FilterStep)

// WithUnknownLeverage sets how unparseable leverage values are treated.
func WithUnknownLeverage(p filter.Policy) FilterStepOption {
	return func(s *FilterStep) {
		s.policy = p
	}
}

// WithFilterLogger sets a custom logger for the filter step.
func WithFilterLogger(logger *slog.Logger) FilterStepOption {
	return func(s *FilterStep) {
		s.logger = logger
	}
}

// NewFilterStep creates a filter step over source.
func NewFilterStep(source BrokerSource, opts ...FilterStepOption) *FilterStep {
	s := &FilterStep{
		source: source,
		policy: filter.UnknownInclusive,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *FilterStep) Name() string {
	return "filter"
}

// Do replaces result.Brokers with the matching brokers in catalog order.
func (s *FilterStep) Do(_ context.Context, result *model.PageResult) error {
	if s.source == nil {
		return ErrNoSource
	}
	criteria := filter.FromFilters(result.Config.Filters)
	criteria.UnknownLeverage = s.policy

	all := s.source.Brokers()
	result.Brokers = filter.Brokers(all, criteria)

	s.logger.Debug("filtered brokers",
		"page", result.Config.Path,
		"matched", len(result.Brokers),
		"total", len(all),
	)
	return nil
}

// SortStep ranks result.Brokers by result.Sort.
type SortStep struct{}

// NewSortStep creates a sort step.
func NewSortStep() *SortStep {
	return &SortStep{}
}

// Name returns the step name.
func (s *SortStep) Name() string {
	return "sort"
}

// Do sorts the brokers in place of the previous list.
func (s *SortStep) Do(_ context.Context, result *model.PageResult) error {
	result.Brokers = rank.BySpec(result.Brokers, result.Sort)
	return nil
}

// ContentStep generates the page copy, statistics and navigation.
type ContentStep struct {
	opts []content.Option
}

// NewContentStep creates a content step. opts are passed to
// content.GeneratePageContent.
func NewContentStep(opts ...content.Option) *ContentStep {
	return &ContentStep{opts: opts}
}

// Name returns the step name.
func (s *ContentStep) Name() string {
	return "content"
}

// Do fills result.Content from the ranked brokers.
func (s *ContentStep) Do(_ context.Context, result *model.PageResult) error {
	result.Content = content.GeneratePageContent(result.Config, result.Brokers, s.opts...)
	return nil
}

// Settings groups everything needed to build the standard page pipeline.
type Settings struct {
	// Source is the broker catalog.
	Source BrokerSource

	// UnknownLeverage decides how unparseable leverage is filtered.
	UnknownLeverage filter.Policy

	// Content holds options for the content generator.
	Content []content.Option

	// Logger is used by the pipeline and its steps.
	Logger *slog.Logger
}

// NewPagePipeline returns the standard filter → sort → content pipeline.
func NewPagePipeline(s Settings) *Pipeline {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	p := New(WithLogger(logger))
	p.AddSteps(
		NewFilterStep(s.Source, WithUnknownLeverage(s.UnknownLeverage), WithFilterLogger(logger)),
		NewSortStep(),
		NewContentStep(s.Content...),
	)
	return p
}

// Render runs the standard pipeline for a single page.
func Render(ctx context.Context, s Settings, cfg model.PageConfig, spec model.SortSpec) (*model.PageResult, error) {
	result := model.NewPageResult(cfg, spec)
	if err := NewPagePipeline(s).Execute(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}
