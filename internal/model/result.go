package model

import "time"

// PageResult is the output of running one page configuration through the
// filter → sort → content pipeline. It is recomputed on every render and
// only a summary of it is persisted (build history).
//
// Design decision: mirroring a scan report, the result is a single struct
// that every pipeline step fills in. Steps record their name in
// PerformedSteps so partial results are easy to diagnose.
type PageResult struct {
	// Config is the page configuration that drove this result.
	Config PageConfig `json:"config"`

	// Sort is the ranking applied to Brokers.
	Sort SortSpec `json:"sort"`

	// Brokers is the filtered and sorted broker list.
	Brokers []Broker `json:"brokers"`

	// Content is the generated page content, including Stats.
	Content GeneratedContent `json:"content"`

	// GeneratedAt is when the pipeline ran.
	GeneratedAt time.Time `json:"generatedAt"`

	// PerformedSteps lists the pipeline steps that completed.
	PerformedSteps []string `json:"performedSteps,omitempty"`

	// Error is the error that stopped the pipeline, if any.
	// It is not serialized; ErrorMessage carries the text.
	Error error `json:"-"`

	// ErrorMessage is the text of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewPageResult creates an empty result for cfg with the given sort spec.
func NewPageResult(cfg PageConfig, sort SortSpec) *PageResult {
	return &PageResult{
		Config:         cfg,
		Sort:           sort,
		Brokers:        []Broker{},
		GeneratedAt:    time.Now(),
		PerformedSteps: make([]string, 0),
	}
}

// Stats is a shortcut for Content.Stats.
func (r *PageResult) Stats() Stats {
	return r.Content.Stats
}
