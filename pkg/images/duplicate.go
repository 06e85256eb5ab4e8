package images

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/cardsheet/pkg/errors"
)

// DuplicateOptions configures [Duplicate].
type DuplicateOptions struct {
	// Copies is the number of copies written per source image.
	Copies int
	// ConvertJPEG re-encodes every copy as a JPEG. Sources that fail to
	// decode are byte-copied with their original extension instead.
	ConvertJPEG bool
	// Quality is the JPEG quality used with ConvertJPEG (default 95).
	Quality int
	// Logger receives one line per written file. Nil discards.
	Logger *log.Logger
}

// Duplicate writes opts.Copies copies of every image in src into dst, named
// <stem>_copy<i><ext> with i counting from 1. dst is created when missing.
// It returns the number of files written.
//
// Duplicating a deck this way is how several copies of a card end up on a
// sheet: the copies sort next to each other in [List] order.
func Duplicate(ctx context.Context, src, dst string, opts DuplicateOptions) (int, error) {
	if err := errors.ValidateCopies(opts.Copies); err != nil {
		return 0, err
	}
	if opts.Quality == 0 {
		opts.Quality = 95
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	refs, err := List(src)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dst)
	}

	written := 0
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return written, errors.Wrap(errors.ErrCodeCanceled, err, "duplicate")
		}
		n, err := duplicateOne(ref, dst, opts, logger)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func duplicateOne(ref Ref, dst string, opts DuplicateOptions, logger *log.Logger) (int, error) {
	stem := strings.TrimSuffix(ref.Name(), filepath.Ext(ref.Path))

	if opts.ConvertJPEG {
		img, err := imaging.Open(ref.Path, imaging.AutoOrientation(true))
		if err == nil {
			for i := 1; i <= opts.Copies; i++ {
				target := filepath.Join(dst, fmt.Sprintf("%s_copy%d.jpg", stem, i))
				if err := imaging.Save(img, target, imaging.JPEGQuality(opts.Quality)); err != nil {
					return i - 1, errors.Wrap(errors.ErrCodeRender, err, "write %s", target)
				}
				logger.Debug("converted", "from", ref.Name(), "to", filepath.Base(target))
			}
			return opts.Copies, nil
		}
		logger.Warn("cannot convert, copying original instead", "file", ref.Name(), "err", err)
	}

	ext := filepath.Ext(ref.Path)
	for i := 1; i <= opts.Copies; i++ {
		target := filepath.Join(dst, fmt.Sprintf("%s_copy%d%s", stem, i, ext))
		if err := copyFile(ref.Path, target); err != nil {
			return i - 1, errors.Wrap(errors.ErrCodeRender, err, "copy %s to %s", ref.Path, target)
		}
		logger.Debug("copied", "from", ref.Name(), "to", filepath.Base(target))
	}
	return opts.Copies, nil
}

// copyFile copies contents, permissions and modification time.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
