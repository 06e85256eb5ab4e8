package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/render"
)

// Format names an output sink.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatPDF, FormatPNG, FormatJSON}

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatPDF, FormatPNG, FormatJSON:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want pdf, png or json)", s)
}

// FormatFromPath infers the format from the output file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer output format from %q", path)
	}
	return ParseFormat(ext)
}

// Options configures the sink returned by [New].
type Options struct {
	Title       string  // document title (PDF metadata, JSON header)
	Creator     string  // producing application (PDF metadata)
	RunID       string  // run identifier recorded in the JSON log
	PixelsPerMM float64 // PNG resolution; 0 selects the default
}

// New creates the sink for format.
func New(format Format, opts Options) (render.Renderer, error) {
	switch format {
	case FormatPDF:
		return NewPDF(WithPDFTitle(opts.Title), WithPDFCreator(opts.Creator)), nil
	case FormatPNG:
		return NewPNG(WithPNGResolution(opts.PixelsPerMM)), nil
	case FormatJSON:
		return NewJSON(WithJSONTitle(opts.Title), WithJSONRunID(opts.RunID)), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", format)
}

// writeFile writes path through a temporary file in the same directory, so
// path is either fully written or untouched.
func writeFile(path string, write func(w io.Writer) error) error {
	tmp, err := stage(path, write)
	if err != nil {
		return err
	}
	return commit(tmp, path)
}

// stage writes a complete temporary file next to path and returns its name.
func stage(path string, write func(w io.Writer) error) (string, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, err, "create output in %s", dir)
	}
	name := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", saveError(err, path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return "", errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	return name, nil
}

// commit moves a staged file into place. The staged file is removed on
// failure.
func commit(tmp, path string) error {
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	return nil
}

func saveError(err error, path string) error {
	if errors.Coded(err) {
		return err
	}
	return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
}

// numbered returns "<stem>-NNN<ext>" for page n.
func numbered(path string, n int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(path, ext), n, ext)
}

// pageNumber reports the page n when name is numbered(path, n).
func pageNumber(path, name string) (int, bool) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext) + "-"
	if !strings.HasPrefix(name, stem) || !strings.HasSuffix(name, ext) {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, stem), ext)
	if len(digits) < 3 || strings.Trim(digits, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
