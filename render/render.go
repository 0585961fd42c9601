package render

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/midbel/snapcharts/axis"
)

const (
	minWidth = 2

	tickFull    = '+'
	tickPartial = '|'
	rule        = '-'
)

// Renderer draws an axis as text: an optional title, a ruler with a mark per
// tick and the labels placed under their tick. Labels that would overlap the
// previous one are dropped.
type Renderer struct {
	Width int

	TitleStyle lipgloss.Style
	AxisStyle  lipgloss.Style
	LabelStyle lipgloss.Style

	styled bool
}

func Plain(width int) *Renderer {
	return &Renderer{
		Width: width,
	}
}

func Styled(width int) *Renderer {
	r := Plain(width)
	r.styled = true
	r.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	r.AxisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	r.LabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	return r
}

func (r *Renderer) Render(title string, set *axis.IntervalSet, labels []string) string {
	var (
		str  strings.Builder
		cols = Columns(set, r.width())
	)
	if title != "" {
		str.WriteString(r.style(r.TitleStyle, title))
		str.WriteByte('\n')
	}
	str.WriteString(r.style(r.AxisStyle, r.ruler(set, cols)))
	str.WriteByte('\n')
	str.WriteString(r.style(r.LabelStyle, r.labels(cols, labels)))
	return str.String()
}

func (r *Renderer) ruler(set *axis.IntervalSet, cols []int) string {
	line := []rune(strings.Repeat(string(rule), r.width()))
	for i, c := range cols {
		line[c] = tickFull
		if !set.IsFullInterval(i) {
			line[c] = tickPartial
		}
	}
	return string(line)
}

func (r *Renderer) labels(cols []int, labels []string) string {
	var (
		width = r.width()
		line  = []rune(strings.Repeat(" ", width))
		last  = -2
	)
	for i, c := range cols {
		if i >= len(labels) {
			break
		}
		text := []rune(labels[i])
		if len(text) > width {
			continue
		}
		start := c - len(text)/2
		start = max(0, min(start, width-len(text)))
		if start < last+2 {
			continue
		}
		copy(line[start:], text)
		last = start + len(text) - 1
	}
	return strings.TrimRight(string(line), " ")
}

func (r *Renderer) style(s lipgloss.Style, str string) string {
	if !r.styled {
		return str
	}
	return s.Render(str)
}

func (r *Renderer) width() int {
	return max(r.Width, minWidth)
}

// Columns gives the column of each tick on a line of width characters.
func Columns(set *axis.IntervalSet, width int) []int {
	cols := make([]int, 0, set.Len())
	for _, v := range set.Values {
		c := int(math.Round(set.Ratio(v) * float64(width-1)))
		cols = append(cols, max(0, min(c, width-1)))
	}
	return cols
}
