// Package pipeline runs one card sheet generation from settings to file.
//
// This package implements the complete resolve → validate → paginate →
// render pipeline used by the CLI. By centralizing this logic, every entry
// point applies the same pre-flight checks in the same order.
//
// # Architecture
//
// A run has four stages:
//
//  1. Resolve: list front images and pair them with backs ([images.Resolve])
//  2. Validate: check that the grid fits the page ([layout.Validate])
//  3. Render: walk [paginate.Next] pair by pair and draw every page
//  4. Save: write the document through the sink
//
// Stages 1 and 2 finish before a renderer exists, so a configuration error
// never produces an output file. Resolution runs first so that an empty
// front directory is reported without any geometry work.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Settings: layout.DefaultSettings(),
//	    Front:    "cards/fronts",
//	    Output:   "deck.pdf",
//	}
//	result, err := runner.Execute(ctx, opts)
//
// [Runner.Plan] performs stages 1 and 2 plus a concurrent header probe of
// every image, without rendering.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/layout"
	"github.com/matzehuels/cardsheet/pkg/render/sink"
)

// DefaultTitle is the document title when none is given.
const DefaultTitle = "Card sheet"

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options contains all configuration for one run.
type Options struct {
	// Layout
	Settings layout.Settings `json:"settings"`

	// Inputs: a front directory, and a back file or directory depending on
	// Settings.BackMode.
	Front string `json:"front"`
	Back  string `json:"back,omitempty"`

	// Output
	Output      string      `json:"output"`
	Format      sink.Format `json:"format,omitempty"` // inferred from Output when empty
	Title       string      `json:"title,omitempty"`
	PixelsPerMM float64     `json:"pixels_per_mm,omitempty"` // PNG only

	// Workers bounds concurrent header decoding in Plan (GOMAXPROCS when 0).
	Workers int `json:"workers,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a run.
type Result struct {
	RunID  string
	Output string
	Files  []string // files written; several for multi-page PNG proofs
	Format sink.Format
	Cards  int
	Stats  Stats
}

// Stats contains run statistics.
type Stats struct {
	FrontPages  int
	BackPages   int
	ResolveTime time.Duration
	RenderTime  time.Duration
	SaveTime    time.Duration
}

// Pages returns the total page count.
func (s Stats) Pages() int { return s.FrontPages + s.BackPages }

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForPlan(); err != nil {
		return err
	}
	if err := errors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	if o.Format == "" {
		f, err := sink.FormatFromPath(o.Output)
		if err != nil {
			return err
		}
		o.Format = f
	} else {
		f, err := sink.ParseFormat(string(o.Format))
		if err != nil {
			return err
		}
		o.Format = f
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	o.validated = true
	return nil
}

// ValidateForPlan checks the fields needed to resolve and validate a run.
func (o *Options) ValidateForPlan() error {
	if o.Front == "" {
		return errors.New(errors.ErrCodeInvalidInput, "front image directory is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}
