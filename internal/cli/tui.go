package cli

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cardsheet/pkg/config"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listPendingStyle  = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Settings Fields
// =============================================================================

// field identifies one editable setting.
type field int

const (
	fieldPageWidth field = iota
	fieldPageHeight
	fieldCardWidth
	fieldCardHeight
	fieldBleed
	fieldRows
	fieldColumns
	fieldHasBorder
	fieldBorderWidth
	fieldBorderColor
	fieldGuideLineWidth
	fieldShowGuideLines
	fieldBackMode
)

type fieldSpec struct {
	key  string
	unit string
	get  func(layout.Settings) string
	set  func(*layout.Settings, string) error
}

func floatField(key string, p func(*layout.Settings) *float64) fieldSpec {
	return fieldSpec{
		key:  key,
		unit: "mm",
		get:  func(s layout.Settings) string { return strconv.FormatFloat(*p(&s), 'f', -1, 64) },
		set: func(s *layout.Settings, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidSettings, "%s: %q is not a number", key, v)
			}
			*p(s) = f
			return nil
		},
	}
}

func intField(key string, p func(*layout.Settings) *int) fieldSpec {
	return fieldSpec{
		key: key,
		get: func(s layout.Settings) string { return strconv.Itoa(*p(&s)) },
		set: func(s *layout.Settings, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return errors.New(errors.ErrCodeInvalidSettings, "%s: %q is not a whole number", key, v)
			}
			*p(s) = n
			return nil
		},
	}
}

func boolField(key string, p func(*layout.Settings) *bool) fieldSpec {
	return fieldSpec{
		key: key,
		get: func(s layout.Settings) string { return strconv.FormatBool(*p(&s)) },
		set: func(s *layout.Settings, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return errors.New(errors.ErrCodeInvalidSettings, "%s: %q is not true or false", key, v)
			}
			*p(s) = b
			return nil
		},
	}
}

var borderColorField = fieldSpec{
	key:  "borderColor",
	unit: "r,g,b",
	get: func(s layout.Settings) string {
		c := s.BorderColor
		return fmt.Sprintf("%g,%g,%g", c.R, c.G, c.B)
	},
	set: func(s *layout.Settings, v string) error {
		c, err := layout.ParseColor(v)
		if err != nil {
			return err
		}
		s.BorderColor = c
		return nil
	},
}

var backModeField = fieldSpec{
	key:  config.KeyBackMode,
	unit: "none|same|unique",
	get:  func(s layout.Settings) string { return s.BackMode.String() },
	set: func(s *layout.Settings, v string) error {
		m, err := layout.ParseBackMode(v)
		if err != nil {
			return err
		}
		s.BackMode = m
		return nil
	},
}

// settingsFields lists the editable fields in display order, indexed by field.
var settingsFields = []fieldSpec{
	fieldPageWidth:      floatField(config.KeyPageWidth, func(s *layout.Settings) *float64 { return &s.PageWidth }),
	fieldPageHeight:     floatField(config.KeyPageHeight, func(s *layout.Settings) *float64 { return &s.PageHeight }),
	fieldCardWidth:      floatField(config.KeyCardWidth, func(s *layout.Settings) *float64 { return &s.CardWidth }),
	fieldCardHeight:     floatField(config.KeyCardHeight, func(s *layout.Settings) *float64 { return &s.CardHeight }),
	fieldBleed:          floatField(config.KeyBleed, func(s *layout.Settings) *float64 { return &s.Bleed }),
	fieldRows:           intField(config.KeyRows, func(s *layout.Settings) *int { return &s.Rows }),
	fieldColumns:        intField(config.KeyColumns, func(s *layout.Settings) *int { return &s.Columns }),
	fieldHasBorder:      boolField(config.KeyHasBorder, func(s *layout.Settings) *bool { return &s.HasBorder }),
	fieldBorderWidth:    floatField(config.KeyBorderWidth, func(s *layout.Settings) *float64 { return &s.BorderWidth }),
	fieldBorderColor:    borderColorField,
	fieldGuideLineWidth: floatField(config.KeyGuideLineWidth, func(s *layout.Settings) *float64 { return &s.GuideLineWidth }),
	fieldShowGuideLines: boolField(config.KeyShowGuideLines, func(s *layout.Settings) *bool { return &s.ShowGuideLines }),
	fieldBackMode:       backModeField,
}

// =============================================================================
// settingsModel - Interactive settings editor
// =============================================================================

// settingsModel edits a copy of the settings. Typing on a row opens an edit
// buffer for that field; buffers survive moving between rows and are applied
// with enter (one field) or ctrl+s (all fields, then save).
type settingsModel struct {
	settings layout.Settings
	buffers  map[field]string
	cursor   field
	err      error
	saved    bool
}

func newSettingsModel(s layout.Settings) settingsModel {
	return settingsModel{settings: s, buffers: map[field]string{}}
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		if _, editing := m.buffers[m.cursor]; editing {
			m = m.discard(m.cursor)
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyUp, tea.KeyShiftTab:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown, tea.KeyTab:
		if int(m.cursor) < len(settingsFields)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		m = m.commit(m.cursor)
	case tea.KeyCtrlS:
		m = m.commitAll()
		if m.err == nil {
			m.err = m.settings.Check()
		}
		if m.err == nil {
			m.saved = true
			return m, tea.Quit
		}
	case tea.KeyBackspace:
		if buf, editing := m.buffers[m.cursor]; editing && buf != "" {
			r := []rune(buf)
			m = m.edit(m.cursor, string(r[:len(r)-1]))
		}
	case tea.KeyRunes, tea.KeySpace:
		buf := m.buffers[m.cursor]
		m = m.edit(m.cursor, buf+string(key.Runes))
	}
	return m, nil
}

// edit replaces the buffer of f. The map is copied so that earlier model
// values keep their own buffers.
func (m settingsModel) edit(f field, value string) settingsModel {
	buffers := maps.Clone(m.buffers)
	if buffers == nil {
		buffers = map[field]string{}
	}
	buffers[f] = value
	m.buffers = buffers
	m.err = nil
	return m
}

func (m settingsModel) discard(f field) settingsModel {
	buffers := maps.Clone(m.buffers)
	delete(buffers, f)
	m.buffers = buffers
	m.err = nil
	return m
}

// commit parses the buffer of f into the settings. On failure the buffer is
// kept and the error shown.
func (m settingsModel) commit(f field) settingsModel {
	buf, editing := m.buffers[f]
	if !editing {
		return m
	}
	s := m.settings
	if err := settingsFields[f].set(&s, buf); err != nil {
		m.err = err
		m.cursor = f
		return m
	}
	m.settings = s
	return m.discard(f)
}

func (m settingsModel) commitAll() settingsModel {
	for f := range settingsFields {
		m = m.commit(field(f))
		if m.err != nil {
			return m
		}
	}
	return m
}

func (m settingsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edit Settings"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  type to edit  ⏎ apply  esc discard  ctrl+s save  ctrl+c quit"))
	b.WriteString("\n\n")

	for i, spec := range settingsFields {
		f := field(i)
		cursor := "  "
		if f == m.cursor {
			cursor = "▸ "
		}

		label := fmt.Sprintf("%-16s", spec.key)
		value := spec.get(m.settings)
		style := listNormalStyle
		if buf, editing := m.buffers[f]; editing {
			value = buf + "▏"
			style = listPendingStyle
		}
		if f == m.cursor {
			label = listSelectedStyle.Render(label)
		} else {
			label = listNormalStyle.Render(label)
		}

		b.WriteString(cursor + label + " " + style.Render(value))
		if spec.unit != "" {
			b.WriteString(" " + listDimStyle.Render(spec.unit))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + StyleError.Render(errors.UserMessage(m.err)))
	default:
		fit := layout.FitReport(m.settings)
		if fit.Fits() {
			b.WriteString(StyleSuccess.Render(fmt.Sprintf("%s grid fits, %.1f × %.1f mm spare", iconSuccess, fit.SlackX, fit.SlackY)))
		} else {
			b.WriteString(StyleWarning.Render(fmt.Sprintf("%s grid is %.1f × %.1f mm, page is %.1f × %.1f mm",
				iconWarning, fit.GridWidth, fit.GridHeight, m.settings.PageWidth, m.settings.PageHeight)))
		}
	}
	b.WriteString("\n")
	return b.String()
}
