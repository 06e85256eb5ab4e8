package layout

import (
	"testing"

	"github.com/matzehuels/cardsheet/pkg/errors"
)

func TestParseBackMode(t *testing.T) {
	tests := []struct {
		input   string
		want    BackMode
		wantErr bool
	}{
		{"none", NoBack, false},
		{"same", SameBack, false},
		{"unique", UniqueBack, false},
		{"Unique", UniqueBack, false},
		{" same ", SameBack, false},
		{"0", NoBack, false},
		{"1", SameBack, false},
		{"2", UniqueBack, false},
		{"3", NoBack, true},
		{"-1", NoBack, true},
		{"duplex", NoBack, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBackMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBackMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidSettings) {
					t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSettings)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseBackMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBackModeStringRoundTrip(t *testing.T) {
	for _, m := range []BackMode{NoBack, SameBack, UniqueBack} {
		got, err := ParseBackMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseBackMode(%q) = %v, %v; want %v", m.String(), got, err, m)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    Color
		wantErr bool
	}{
		{"0,0,0", Black, false},
		{"0.5, 0.5, 0.5", GuideGray, false},
		{"1,0,0.25", Color{R: 1, B: 0.25}, false},
		{"1,0", Color{}, true},
		{"a,b,c", Color{}, true},
		{"1.5,0,0", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColorRGB8(t *testing.T) {
	r, g, b := GuideGray.RGB8()
	if r != 128 || g != 128 || b != 128 {
		t.Errorf("GuideGray.RGB8() = %d,%d,%d, want 128,128,128", r, g, b)
	}
	r, g, b = Color{R: 1}.RGB8()
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("red.RGB8() = %d,%d,%d, want 255,0,0", r, g, b)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if err := s.Check(); err != nil {
		t.Fatalf("defaults fail Check(): %v", err)
	}
	if s.Capacity() != 9 {
		t.Errorf("Capacity() = %d, want 9", s.Capacity())
	}
	if !s.ShowGuideLines || s.HasBorder || s.BackMode != NoBack {
		t.Errorf("unexpected defaults: %+v", s)
	}
}

func TestLookupSize(t *testing.T) {
	a4, err := LookupSize(PaperSizes, "A4")
	if err != nil || a4.Width != 210 || a4.Height != 297 {
		t.Fatalf("LookupSize(A4) = %+v, %v", a4, err)
	}

	land, err := LookupSize(PaperSizes, "a4-landscape")
	if err != nil || land.Width != 297 || land.Height != 210 {
		t.Fatalf("LookupSize(a4-landscape) = %+v, %v", land, err)
	}

	poker, err := LookupSize(CardSizes, "poker")
	if err != nil || poker.Width != 63 || poker.Height != 88 {
		t.Fatalf("LookupSize(poker) = %+v, %v", poker, err)
	}

	if _, err := LookupSize(PaperSizes, "b5"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("LookupSize(b5) error = %v, want INVALID_INPUT", err)
	}
}
