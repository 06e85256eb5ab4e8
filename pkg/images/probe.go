package images

import (
	"context"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/observability"
)

// Info is the decoded header of one image.
type Info struct {
	Ref    Ref
	Format string // as reported by the decoder: "jpeg" or "png"
	Width  int    // pixels
	Height int    // pixels
}

// Aspect returns width / height, or 0 for an empty image.
func (i Info) Aspect() float64 {
	if i.Height == 0 {
		return 0
	}
	return float64(i.Width) / float64(i.Height)
}

// Probe decodes the header of every ref using up to workers goroutines
// (GOMAXPROCS when workers <= 0). Results are in input order. The first
// failure cancels the remaining work and is returned as DECODE_ERROR; when
// several files fail, the lowest index among those examined is reported.
func Probe(ctx context.Context, refs []Ref, workers int) ([]Info, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	infos := make([]Info, len(refs))
	errs := make([]error, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			info, err := probeOne(ref)
			observability.Image().OnImageProbed(ctx, ref.Path, time.Since(start), err)
			if err != nil {
				errs[i] = err
				return err
			}
			infos[i] = info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, e := range errs {
			if e != nil {
				return nil, e
			}
		}
		return nil, errors.Wrap(errors.ErrCodeCanceled, err, "image probe")
	}
	return infos, nil
}

func probeOne(ref Ref) (Info, error) {
	f, err := os.Open(ref.Path)
	if err != nil {
		return Info{}, errors.Wrap(errors.ErrCodeDecode, err, "open %s", ref.Path)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", ref.Path)
	}
	return Info{Ref: ref, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
