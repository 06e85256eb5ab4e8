package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(layout.DefaultSettings(), s); diff != "" {
		t.Errorf("settings (-want +got):\n%s", diff)
	}
}

func TestParseLegacyFile(t *testing.T) {
	data := `
columns = 2
rows = 4
pageWidth = 215.9
pageHeight = 279.4
hasBorder = 1
borderWidth = 0.5
borderColor_r = 1
borderColor_g = 0.25
borderColor_b = 0
showGuideLines = 0
backMode = 2
someFutureKey = 12
`
	s, err := Parse([]byte(data), TOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := layout.DefaultSettings()
	want.Columns = 2
	want.Rows = 4
	want.PageWidth = 215.9
	want.PageHeight = 279.4
	want.HasBorder = true
	want.BorderWidth = 0.5
	want.BorderColor = layout.Color{R: 1, G: 0.25, B: 0}
	want.ShowGuideLines = false
	want.BackMode = layout.UniqueBack

	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("settings (-want +got):\n%s", diff)
	}
}

func TestParseHandEditedFile(t *testing.T) {
	data := `# printed at the copy shop
rows = 2
notes = two decks, sleeved
columns = "4"
rows = 4
backMode = same
`
	s, err := Parse([]byte(data), TOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := layout.DefaultSettings()
	want.Rows = 4
	want.Columns = 4
	want.BackMode = layout.SameBack
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("settings (-want +got):\n%s", diff)
	}
}

func TestParseYAML(t *testing.T) {
	data := `
cardWidth: 70
cardHeight: 120
bleed: 2
backMode: same
hasBorder: true
`
	s, err := Parse([]byte(data), YAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.CardWidth != 70 || s.CardHeight != 120 || s.Bleed != 2 || s.BackMode != layout.SameBack || !s.HasBorder {
		t.Errorf("settings = %+v", s)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		key  string
	}{
		{"not toml", "rows: 3 and then some", ""},
		{"bad bool", "hasBorder = 2", KeyHasBorder},
		{"fractional rows", "rows = 2.5", KeyRows},
		{"bad mode", `backMode = "sideways"`, KeyBackMode},
		{"bad number", `pageWidth = "wide"`, KeyPageWidth},
		{"huge rows", "rows = 1e30", KeyRows},
		{"bad line after fallback", "notes = a, b\nrows = x", KeyRows},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), TOML)
			if err == nil {
				t.Fatal("Parse() succeeded")
			}
			if tt.key != "" {
				if !errors.Is(err, errors.ErrCodeInvalidSettings) {
					t.Errorf("code = %s, want INVALID_SETTINGS", errors.GetCode(err))
				}
				if !strings.Contains(err.Error(), tt.key) {
					t.Errorf("error %q does not name %s", err, tt.key)
				}
			}
		})
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("rows = 3\ncolumns 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidSettings) {
		t.Errorf("Load() error = %v, want INVALID_SETTINGS", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := layout.DefaultSettings()
	s.Rows, s.Columns = 2, 4
	s.Bleed = 1.5
	s.HasBorder = true
	s.BorderWidth = 0.3
	s.BorderColor = layout.Color{R: 0.2, G: 0.4, B: 0.6}
	s.BackMode = layout.SameBack

	for _, name := range []string{"settings.toml", "nested/settings.yaml", "legacy.txt"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Save(path, s); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(s, got); diff != "" {
				t.Errorf("round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveWritesKeyValueLines(t *testing.T) {
	data, err := Marshal(layout.DefaultSettings(), TOML)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"pageWidth = 210.0", "rows = 3", `backMode = "none"`, "showGuideLines = true"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestSaveRejectsInvalidSettings(t *testing.T) {
	s := layout.DefaultSettings()
	s.Rows = 0
	if err := Save(filepath.Join(t.TempDir(), "s.toml"), s); !errors.Is(err, errors.ErrCodeInvalidSettings) {
		t.Errorf("Save() error = %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvSettings, "")
	if got := DefaultPath(); got != DefaultFile {
		t.Errorf("DefaultPath() = %q, want %q", got, DefaultFile)
	}
	t.Setenv(EnvSettings, "/etc/cards.yaml")
	if got := DefaultPath(); got != "/etc/cards.yaml" {
		t.Errorf("DefaultPath() = %q", got)
	}
}
