// Package view renders explorer views and melodies for the terminal.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsphweid/musictools/explorer"
	"github.com/jsphweid/musictools/model"
)

type Theme struct {
	Primary lipgloss.Color
	Dim     lipgloss.Color
	On      lipgloss.Color
}

var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	On:      lipgloss.Color("#ffd866"),
}

type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Box      lipgloss.Style
	Dim      lipgloss.Style
	On       lipgloss.Style
	Disabled lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label:    lipgloss.NewStyle().Bold(true),
		Box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Primary).Padding(0, 1),
		Dim:      lipgloss.NewStyle().Foreground(t.Dim),
		On:       lipgloss.NewStyle().Foreground(t.On),
		Disabled: lipgloss.NewStyle().Foreground(t.Dim).Faint(true),
	}
}

var defaultStyles = NewStyles(DefaultTheme)

const (
	checked   = "●"
	unchecked = "○"
)

// checkboxes renders one column per pitch: the label over its mark.
func (s Styles) checkboxes(boxes []explorer.Checkbox) string {
	var cols []string
	for _, cb := range boxes {
		mark := unchecked
		style := s.Dim
		if cb.Checked {
			mark = checked
			style = s.On
		}
		if !cb.Enabled {
			style = s.Disabled
			if cb.Checked {
				style = s.On.Faint(true)
			}
		}
		col := lipgloss.JoinVertical(lipgloss.Center, s.Label.Render(cb.Label), style.Render(mark))
		cols = append(cols, lipgloss.NewStyle().Width(4).Align(lipgloss.Center).Render(col))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (s Styles) field(name string, value any) string {
	return s.Dim.Render(name+":") + " " + fmt.Sprint(value)
}

func (s Styles) Scale(v explorer.ScaleView) string {
	lines := []string{
		s.Title.Render("Scale"),
		s.checkboxes(v.Checkboxes),
		s.field("Root", v.Root) + "   " + s.field("Decimal", v.Decimal) + "   " + s.field("Binary", v.Binary),
		s.field("Scale", v.Canonical),
	}
	return s.Box.Render(strings.Join(lines, "\n"))
}

func (s Styles) Chord(v explorer.ChordView) string {
	root, canonical := v.Root, v.Canonical
	if root == "" {
		root = s.Dim.Render("none")
		canonical = s.Dim.Render("none")
	}
	lines := []string{
		s.Title.Render("Chord"),
		s.checkboxes(v.Checkboxes),
		s.field("Root", root) + "   " + s.field("Roots", strings.Join(v.RootOptions, " ")),
		s.field("Decimal", v.Decimal) + "   " + s.field("Chord", canonical),
	}
	var intervals []string
	for _, iv := range v.Intervals {
		var choices []string
		for _, c := range iv.Choices {
			if c == iv.Selected {
				choices = append(choices, s.On.Render("["+c+"]"))
			} else {
				choices = append(choices, s.Dim.Render(c))
			}
		}
		intervals = append(intervals, fmt.Sprintf("%-5s %v", iv.Name, strings.Join(choices, " ")))
	}
	lines = append(lines, intervals...)
	return s.Box.Render(strings.Join(lines, "\n"))
}

func (s Styles) Views(v explorer.Views) string {
	return lipgloss.JoinVertical(lipgloss.Left, s.Scale(v.Scale), s.Chord(v.Chord))
}

// Events lists notes one per line with their start, length, pitch and
// velocity.
func (s Styles) Events(events []model.NoteEvent) string {
	var lines []string
	lines = append(lines, s.Label.Render(fmt.Sprintf("%8s %8s %5s %8s", "start", "beats", "pitch", "velocity")))
	for _, e := range events {
		if e.IsRest {
			lines = append(lines, s.Dim.Render(fmt.Sprintf("%8.3f %8.3f %5s %8s", e.Start, e.Duration, "rest", "")))
			continue
		}
		lines = append(lines, fmt.Sprintf("%8.3f %8.3f %5d %8d", e.Start, e.Duration, e.Pitch, e.Velocity))
	}
	return strings.Join(lines, "\n")
}

func (s Styles) Problems(problems []model.FieldProblem) string {
	var lines []string
	for _, p := range problems {
		lines = append(lines, s.Label.Render(p.Field)+" "+p.Message)
	}
	return strings.Join(lines, "\n")
}

func RenderViews(v explorer.Views) string {
	return defaultStyles.Views(v)
}

func RenderEvents(events []model.NoteEvent) string {
	return defaultStyles.Events(events)
}

func RenderProblems(problems []model.FieldProblem) string {
	return defaultStyles.Problems(problems)
}
