package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/cardsheet/pkg/buildinfo"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/images"
	"github.com/matzehuels/cardsheet/pkg/layout"
	"github.com/matzehuels/cardsheet/pkg/observability"
	"github.com/matzehuels/cardsheet/pkg/paginate"
	"github.com/matzehuels/cardsheet/pkg/render"
	"github.com/matzehuels/cardsheet/pkg/render/sink"
)

// SinkFactory creates the renderer for a run.
type SinkFactory func(format sink.Format, opts sink.Options) (render.Renderer, error)

// Runner executes runs. It holds no per-run state, so one Runner may serve
// concurrent runs with distinct outputs.
type Runner struct {
	Logger  *log.Logger
	NewSink SinkFactory
}

// NewRunner creates a runner writing through the sinks of package sink.
// If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger, NewSink: sink.New}
}

// Execute runs the complete resolve → validate → render pipeline and
// writes opts.Output. Any failure aborts the run without writing output.
// Cancellation is checked between pages.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	s := opts.Settings

	runID := uuid.NewString()
	logger := opts.Logger.With("run", runID[:8])
	runStart := time.Now()
	pages := 0
	defer func() {
		observability.Run().OnRunComplete(ctx, runID, pages, time.Since(runStart), err)
	}()

	// Stage 1 and 2: pre-flight
	resolveStart := time.Now()
	set, err := images.Resolve(opts.Front, opts.Back, s.BackMode)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(s); err != nil {
		return nil, err
	}
	result = &Result{RunID: runID, Output: opts.Output, Format: opts.Format, Cards: len(set.Fronts)}
	result.Stats.ResolveTime = time.Since(resolveStart)
	observability.Run().OnRunStart(ctx, runID, len(set.Fronts))

	logger.Info("resolved images",
		"fronts", len(set.Fronts),
		"backs", set.Backs.Len(),
		"mode", s.BackMode,
		"duration", result.Stats.ResolveTime)

	// Stage 3: render
	renderStart := time.Now()
	out, err := r.NewSink(opts.Format, sink.Options{
		Title:       opts.Title,
		Creator:     buildinfo.Creator(),
		RunID:       runID,
		PixelsPerMM: opts.PixelsPerMM,
	})
	if err != nil {
		return nil, err
	}

	for cursor := 0; cursor < len(set.Fronts); {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCanceled, err, "stopped after %d page(s)", pages)
		}
		var pair paginate.Pair
		pair, cursor = paginate.Next(s, set, cursor)

		for _, page := range pairPages(pair) {
			pageStart := time.Now()
			if err := render.DrawPage(out, s, page); err != nil {
				return nil, err
			}
			pages++
			if page.Side == paginate.Front {
				result.Stats.FrontPages++
			} else {
				result.Stats.BackPages++
			}
			observability.Run().OnPageRendered(ctx, runID, page.Number, page.Side.String(), len(page.Slots), time.Since(pageStart))
			logger.Debug("drew page", "page", page.Number, "side", page.Side, "slots", len(page.Slots))
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	// Stage 4: save
	saveStart := time.Now()
	if err := out.Save(opts.Output); err != nil {
		return nil, err
	}
	result.Stats.SaveTime = time.Since(saveStart)
	result.Files = []string{opts.Output}
	if p, ok := out.(*sink.PNG); ok {
		result.Files = p.Files(opts.Output)
	}

	logger.Info("wrote sheet",
		"output", opts.Output,
		"pages", result.Stats.Pages(),
		"duration", result.Stats.RenderTime+result.Stats.SaveTime)
	return result, nil
}

func pairPages(pair paginate.Pair) []paginate.Page {
	if pair.Back == nil {
		return []paginate.Page{pair.Front}
	}
	return []paginate.Page{pair.Front, *pair.Back}
}

// Plan is the pre-flight report of a run.
type Plan struct {
	Set        images.Set
	Fit        layout.Fit
	FrontPages int
	BackPages  int
	Fronts     []images.Info
	Backs      []images.Info
}

// Plan resolves and validates a run and decodes every image header, without
// rendering. A run that plans cleanly can still fail on a corrupt pixel
// stream, but not on a missing or unreadable file.
func (r *Runner) Plan(ctx context.Context, opts Options) (*Plan, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForPlan(); err != nil {
		return nil, err
	}
	s := opts.Settings

	set, err := images.Resolve(opts.Front, opts.Back, s.BackMode)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(s); err != nil {
		return nil, err
	}

	plan := &Plan{Set: set, Fit: layout.FitReport(s)}
	plan.FrontPages, plan.BackPages = paginate.PageCount(s, len(set.Fronts), s.BackMode)

	probeStart := time.Now()
	if plan.Fronts, err = images.Probe(ctx, set.Fronts, opts.Workers); err != nil {
		return nil, err
	}
	if plan.Backs, err = images.Probe(ctx, backRefs(set), opts.Workers); err != nil {
		return nil, err
	}
	opts.Logger.Debug("probed images",
		"count", len(plan.Fronts)+len(plan.Backs),
		"duration", time.Since(probeStart))
	return plan, nil
}

// backRefs lists the back images a run actually uses.
func backRefs(set images.Set) []images.Ref {
	switch b := set.Backs.(type) {
	case images.SingleBack:
		return []images.Ref{b.Ref}
	case images.SequenceBacks:
		return b[:min(len(b), len(set.Fronts))]
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
