// Package images finds the card images of a run and pairs fronts with backs.
//
// Images are carried as [Ref] values: a path and a normalized extension.
// Nothing in this package keeps pixel data; decoding happens at render time
// or in the optional pre-flight [Probe].
//
// Directory listings are deterministic. [List] returns the regular files
// whose extension is jpg, jpeg or png (any case), sorted by file name in
// byte order, so two listings of an unchanged directory are identical.
package images

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/cardsheet/pkg/errors"
)

// Ref refers to a raster image on disk.
type Ref struct {
	Path string
	Ext  string // lower-case, without the dot: "jpg", "jpeg" or "png"
}

// String returns the path.
func (r Ref) String() string { return r.Path }

// Name returns the base file name.
func (r Ref) Name() string { return filepath.Base(r.Path) }

// IsJPEG reports whether the image is a JPEG by extension.
func (r Ref) IsJPEG() bool { return r.Ext == "jpg" || r.Ext == "jpeg" }

// rasterExts are the extensions recognized as card images.
var rasterExts = map[string]bool{"jpg": true, "jpeg": true, "png": true}

// Extension returns the normalized extension of path and whether it is a
// supported raster format.
func Extension(path string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return ext, rasterExts[ext]
}

// NewRef builds a Ref for path. It fails when the extension is not a
// supported raster format.
func NewRef(path string) (Ref, error) {
	ext, ok := Extension(path)
	if !ok {
		return Ref{}, errors.New(errors.ErrCodeInvalidInput, "%s is not a jpg, jpeg or png file", path)
	}
	return Ref{Path: path, Ext: ext}, nil
}

// List returns the raster images directly inside dir, sorted by name.
// Subdirectories and other files are skipped.
func List(dir string) ([]Ref, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image directory %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read image directory %s", dir)
	}

	var names []string
	for _, e := range entries {
		if !isRegular(dir, e) {
			continue
		}
		if _, ok := Extension(e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	refs := make([]Ref, len(names))
	for i, name := range names {
		ext, _ := Extension(name)
		refs[i] = Ref{Path: filepath.Join(dir, name), Ext: ext}
	}
	return refs, nil
}

// isRegular reports whether e is a regular file, following symlinks.
func isRegular(dir string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.Mode().IsRegular()
}
