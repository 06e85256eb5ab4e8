// Package config loads and saves layout settings files.
//
// A settings file holds one setting per line as key = value. Keys may
// appear in any order, unknown keys are ignored and a missing key keeps its
// default. A file that does not exist yields [layout.DefaultSettings].
//
//	pageWidth = 210
//	pageHeight = 297
//	rows = 3
//	columns = 3
//	hasBorder = 1
//	backMode = 2
//
// The line format is parsed as TOML, so comments and quoted strings work.
// A file TOML rejects, such as one with a repeated key or a free-text note,
// is read line by line instead: each line splits at its first '=', lines
// starting with '#' are skipped and a repeated key keeps its last value.
// Booleans also accept 0 and 1, and backMode accepts either a name (none,
// same, unique) or its number. Files ending in .yaml or .yml use the same
// keys in YAML.
package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

// EnvSettings names the environment variable that overrides [DefaultPath].
const EnvSettings = "CARDSHEET_SETTINGS"

// DefaultFile is the settings file used when EnvSettings is unset.
const DefaultFile = "cardsheet.toml"

// Setting keys.
const (
	KeyPageWidth      = "pageWidth"
	KeyPageHeight     = "pageHeight"
	KeyCardWidth      = "cardWidth"
	KeyCardHeight     = "cardHeight"
	KeyBleed          = "bleed"
	KeyRows           = "rows"
	KeyColumns        = "columns"
	KeyHasBorder      = "hasBorder"
	KeyBorderWidth    = "borderWidth"
	KeyBorderColorR   = "borderColor_r"
	KeyBorderColorG   = "borderColor_g"
	KeyBorderColorB   = "borderColor_b"
	KeyGuideLineWidth = "guideLineWidth"
	KeyShowGuideLines = "showGuideLines"
	KeyBackMode       = "backMode"
)

// DefaultPath returns $CARDSHEET_SETTINGS, or cardsheet.toml in the working
// directory.
func DefaultPath() string {
	if p := os.Getenv(EnvSettings); p != "" {
		return p
	}
	return DefaultFile
}

// Format is a settings file syntax.
type Format int

const (
	TOML Format = iota
	YAML
)

// FormatOf picks the syntax from the file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return TOML
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error.
func Load(path string) (layout.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return layout.DefaultSettings(), nil
		}
		return layout.Settings{}, errors.Wrap(errors.ErrCodeInvalidSettings, err, "read settings %s", path)
	}
	s, err := Parse(data, FormatOf(path))
	if err != nil {
		return layout.Settings{}, errors.Wrap(errors.ErrCodeInvalidSettings, err, "settings %s", path)
	}
	return s, nil
}

// Parse decodes a settings document on top of the defaults.
func Parse(data []byte, format Format) (layout.Settings, error) {
	values := map[string]any{}
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &values); err != nil {
			return layout.Settings{}, err
		}
	default:
		if _, err := toml.Decode(string(data), &values); err != nil {
			if values, err = scanLines(data); err != nil {
				return layout.Settings{}, err
			}
		}
	}

	s := layout.DefaultSettings()
	if err := apply(values, &s); err != nil {
		return layout.Settings{}, err
	}
	return s, nil
}

// scanLines reads key = value lines. Only known keys are kept.
func scanLines(data []byte) (map[string]any, error) {
	values := map[string]any{}
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("line %d: want key = value, got %q", i+1, line)
		}
		if !known(key) {
			continue
		}
		value = strings.TrimSpace(value)
		if u, err := strconv.Unquote(value); err == nil {
			value = u
		}
		values[key] = value
	}
	return values, nil
}

func known(key string) bool {
	switch key {
	case KeyPageWidth, KeyPageHeight, KeyCardWidth, KeyCardHeight, KeyBleed,
		KeyRows, KeyColumns, KeyHasBorder, KeyBorderWidth,
		KeyBorderColorR, KeyBorderColorG, KeyBorderColorB,
		KeyGuideLineWidth, KeyShowGuideLines, KeyBackMode:
		return true
	}
	return false
}

func apply(values map[string]any, s *layout.Settings) error {
	floats := map[string]*float64{
		KeyPageWidth:      &s.PageWidth,
		KeyPageHeight:     &s.PageHeight,
		KeyCardWidth:      &s.CardWidth,
		KeyCardHeight:     &s.CardHeight,
		KeyBleed:          &s.Bleed,
		KeyBorderWidth:    &s.BorderWidth,
		KeyBorderColorR:   &s.BorderColor.R,
		KeyBorderColorG:   &s.BorderColor.G,
		KeyBorderColorB:   &s.BorderColor.B,
		KeyGuideLineWidth: &s.GuideLineWidth,
	}
	ints := map[string]*int{
		KeyRows:    &s.Rows,
		KeyColumns: &s.Columns,
	}
	bools := map[string]*bool{
		KeyHasBorder:      &s.HasBorder,
		KeyShowGuideLines: &s.ShowGuideLines,
	}

	for key, raw := range values {
		var err error
		switch {
		case floats[key] != nil:
			*floats[key], err = asFloat(raw)
		case ints[key] != nil:
			*ints[key], err = asInt(raw)
		case bools[key] != nil:
			*bools[key], err = asBool(raw)
		case key == KeyBackMode:
			s.BackMode, err = layout.ParseBackMode(fmt.Sprint(raw))
		default:
			continue
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSettings, err, "key %s", key)
		}
	}
	return nil
}

func asFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case int:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	}
	return 0, fmt.Errorf("want a number, got %v", v)
}

func asInt(v any) (int, error) {
	f, err := asFloat(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("want a whole number, got %v", v)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%v is out of range", v)
	}
	return int(f), nil
}

func asBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(x))
	}
	f, err := asFloat(v)
	if err != nil || (f != 0 && f != 1) {
		return false, fmt.Errorf("want true, false, 0 or 1, got %v", v)
	}
	return f == 1, nil
}

// file is the on-disk layout written by Save, in key order.
type file struct {
	PageWidth      float64 `toml:"pageWidth" yaml:"pageWidth"`
	PageHeight     float64 `toml:"pageHeight" yaml:"pageHeight"`
	CardWidth      float64 `toml:"cardWidth" yaml:"cardWidth"`
	CardHeight     float64 `toml:"cardHeight" yaml:"cardHeight"`
	Bleed          float64 `toml:"bleed" yaml:"bleed"`
	Rows           int     `toml:"rows" yaml:"rows"`
	Columns        int     `toml:"columns" yaml:"columns"`
	HasBorder      bool    `toml:"hasBorder" yaml:"hasBorder"`
	BorderWidth    float64 `toml:"borderWidth" yaml:"borderWidth"`
	BorderColorR   float64 `toml:"borderColor_r" yaml:"borderColor_r"`
	BorderColorG   float64 `toml:"borderColor_g" yaml:"borderColor_g"`
	BorderColorB   float64 `toml:"borderColor_b" yaml:"borderColor_b"`
	GuideLineWidth float64 `toml:"guideLineWidth" yaml:"guideLineWidth"`
	ShowGuideLines bool    `toml:"showGuideLines" yaml:"showGuideLines"`
	BackMode       string  `toml:"backMode" yaml:"backMode"`
}

// Marshal encodes s in the given syntax.
func Marshal(s layout.Settings, format Format) ([]byte, error) {
	f := file{
		PageWidth:      s.PageWidth,
		PageHeight:     s.PageHeight,
		CardWidth:      s.CardWidth,
		CardHeight:     s.CardHeight,
		Bleed:          s.Bleed,
		Rows:           s.Rows,
		Columns:        s.Columns,
		HasBorder:      s.HasBorder,
		BorderWidth:    s.BorderWidth,
		BorderColorR:   s.BorderColor.R,
		BorderColorG:   s.BorderColor.G,
		BorderColorB:   s.BorderColor.B,
		GuideLineWidth: s.GuideLineWidth,
		ShowGuideLines: s.ShowGuideLines,
		BackMode:       s.BackMode.String(),
	}

	if format == YAML {
		return yaml.Marshal(&f)
	}
	var buf bytes.Buffer
	buf.WriteString("# cardsheet settings, lengths in millimeters\n")
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes s to path, creating parent directories.
func Save(path string, s layout.Settings) error {
	if err := s.Check(); err != nil {
		return err
	}
	data, err := Marshal(s, FormatOf(path))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode settings")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write settings %s", path)
	}
	return nil
}
