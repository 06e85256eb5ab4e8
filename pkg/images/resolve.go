package images

import (
	"os"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

// BackSource is where back images come from. It is one of [NoBacks],
// [SingleBack] or [SequenceBacks].
type BackSource interface {
	// BackFor returns the back paired with front index i.
	BackFor(i int) (Ref, bool)
	// Len is the number of distinct back images.
	Len() int

	backSource()
}

// NoBacks produces no back pages.
type NoBacks struct{}

func (NoBacks) BackFor(int) (Ref, bool) { return Ref{}, false }
func (NoBacks) Len() int                { return 0 }
func (NoBacks) backSource()             {}

// SingleBack reuses one image behind every front.
type SingleBack struct {
	Ref Ref
}

func (b SingleBack) BackFor(int) (Ref, bool) { return b.Ref, true }
func (SingleBack) Len() int                  { return 1 }
func (SingleBack) backSource()               {}

// SequenceBacks pairs the i-th back with the i-th front.
type SequenceBacks []Ref

func (b SequenceBacks) BackFor(i int) (Ref, bool) {
	if i < 0 || i >= len(b) {
		return Ref{}, false
	}
	return b[i], true
}
func (b SequenceBacks) Len() int  { return len(b) }
func (SequenceBacks) backSource() {}

// Set is the resolved input of a run.
type Set struct {
	Fronts []Ref
	Backs  BackSource
}

// HasBacks reports whether back pages are produced.
func (s Set) HasBacks() bool {
	_, none := s.Backs.(NoBacks)
	return s.Backs != nil && !none
}

// Resolve lists the front images in frontDir and pairs them with backs
// according to mode.
//
//   - NoBack ignores back.
//   - SameBack requires back to be an existing jpg, jpeg or png file.
//   - UniqueBack lists back as a directory and requires at least as many
//     images as there are fronts; extras are unused.
//
// It fails with EMPTY_FRONT_SET when frontDir holds no images.
func Resolve(frontDir, back string, mode layout.BackMode) (Set, error) {
	fronts, err := List(frontDir)
	if err != nil {
		return Set{}, err
	}
	if len(fronts) == 0 {
		return Set{}, errors.New(errors.ErrCodeEmptyFrontSet, "no jpg, jpeg or png images in %s", frontDir)
	}

	set := Set{Fronts: fronts, Backs: NoBacks{}}
	switch mode {
	case layout.NoBack:
		return set, nil

	case layout.SameBack:
		ref, err := resolveSingle(back)
		if err != nil {
			return Set{}, err
		}
		set.Backs = SingleBack{Ref: ref}
		return set, nil

	case layout.UniqueBack:
		if back == "" {
			return Set{}, errors.New(errors.ErrCodeInvalidBackPath, "unique backs need a back image directory")
		}
		backs, err := List(back)
		if err != nil {
			return Set{}, errors.Wrap(errors.ErrCodeInvalidBackPath, err, "back image directory %s", back)
		}
		if len(backs) < len(fronts) {
			return Set{}, errors.New(errors.ErrCodeInsufficientBackImages,
				"%d back image(s) in %s for %d front image(s)", len(backs), back, len(fronts))
		}
		set.Backs = SequenceBacks(backs)
		return set, nil

	default:
		return Set{}, errors.New(errors.ErrCodeInvalidSettings, "unknown back mode %d", int(mode))
	}
}

func resolveSingle(path string) (Ref, error) {
	if path == "" {
		return Ref{}, errors.New(errors.ErrCodeInvalidBackPath, "same back needs a back image file")
	}
	info, err := os.Stat(path)
	if err != nil {
		return Ref{}, errors.Wrap(errors.ErrCodeInvalidBackPath, err, "back image %s", path)
	}
	if !info.Mode().IsRegular() {
		return Ref{}, errors.New(errors.ErrCodeInvalidBackPath, "back image %s is not a regular file", path)
	}
	ext, ok := Extension(path)
	if !ok {
		return Ref{}, errors.New(errors.ErrCodeInvalidBackPath, "back image %s is not a jpg, jpeg or png file", path)
	}
	return Ref{Path: path, Ext: ext}, nil
}
