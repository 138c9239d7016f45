package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/haivivi/netbuf/pkg/buffer"
)

// Theme defines the colors used to draw buffer regions.
type Theme struct {
	Prependable lipgloss.Color
	Readable    lipgloss.Color
	Writable    lipgloss.Color
	Dim         lipgloss.Color
}

// DefaultTheme is the default theme.
var DefaultTheme = Theme{
	Prependable: lipgloss.Color("#f7b500"),
	Readable:    lipgloss.Color("#00ff9f"),
	Writable:    lipgloss.Color("#6e7681"),
	Dim:         lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Prependable lipgloss.Style
	Readable    lipgloss.Style
	Writable    lipgloss.Style
	Label       lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Prependable: lipgloss.NewStyle().Foreground(t.Prependable),
		Readable:    lipgloss.NewStyle().Bold(true).Foreground(t.Readable),
		Writable:    lipgloss.NewStyle().Foreground(t.Writable),
		Label:       lipgloss.NewStyle().Bold(true),
		Help:        lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// Glyphs used for each region in the layout bar.
const (
	prependGlyph  = "░"
	readableGlyph = "█"
	writableGlyph = "·"
)

// Layout renders buffer stats as a proportional bar of the three regions
// followed by a legend line.
type Layout struct {
	Styles Styles
	Title  string
}

// NewLayout returns a Layout using DefaultTheme.
func NewLayout(title string) Layout {
	return Layout{Styles: NewStyles(DefaultTheme), Title: title}
}

// Render draws st into width columns. Every non-empty region gets at least
// one cell so small regions stay visible.
func (l Layout) Render(st buffer.Stats, width int) string {
	barWidth := max(width-2, 3)
	cells := regionCells([3]int{st.Prependable, st.Readable, st.Writable}, barWidth)

	bar := l.Styles.Prependable.Render(strings.Repeat(prependGlyph, cells[0])) +
		l.Styles.Readable.Render(strings.Repeat(readableGlyph, cells[1])) +
		l.Styles.Writable.Render(strings.Repeat(writableGlyph, cells[2]))

	legend := fmt.Sprintf("prependable %d  readable %d  writable %d  size %d",
		st.Prependable, st.Readable, st.Writable, st.Size)
	counters := fmt.Sprintf("cap %d  grows %d  compactions %d", st.Capacity, st.Grows, st.Compactions)

	var lines []string
	if l.Title != "" {
		lines = append(lines, l.Styles.Label.Render(l.Title))
	}
	lines = append(lines,
		"["+bar+"]",
		legend,
		l.Styles.Help.Render(counters),
	)
	return strings.Join(lines, "\n")
}

// regionCells splits width cells between the regions proportionally to
// their sizes.
func regionCells(sizes [3]int, width int) [3]int {
	var cells [3]int
	total := sizes[0] + sizes[1] + sizes[2]
	if total <= 0 {
		cells[2] = width
		return cells
	}

	used := 0
	nonEmpty := 0
	for i, n := range sizes {
		if n <= 0 {
			continue
		}
		nonEmpty++
		cells[i] = max(n*width/total, 1)
		used += cells[i]
	}

	// Hand out rounding leftovers, or take back overflow, from the largest
	// region.
	largest := 0
	for i := range sizes {
		if sizes[i] > sizes[largest] {
			largest = i
		}
	}
	cells[largest] += width - used
	if cells[largest] < 1 && nonEmpty > 0 {
		cells[largest] = 1
	}
	return cells
}

// RenderLayout renders st with the default layout.
func RenderLayout(st buffer.Stats, width int) string {
	return NewLayout("").Render(st, width)
}
