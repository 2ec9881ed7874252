// Package flagger is an interactive terminal editor for channel masks.
// It shows the bandpass, lets the user walk the channels and toggle flags
// by hand or flag outliers automatically, and returns the final mask.
package flagger

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/radiotk/internal/bandpass"
)

// ErrAborted is returned by Run when the user quits without accepting.
var ErrAborted = errors.New("flagger: aborted")

// madScale converts a median absolute deviation to a Gaussian sigma.
const madScale = 1.4826

var (
	title   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	value   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	flagged = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	panel   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)
)

type Model struct {
	bp        []float64
	freqs     []float64
	mask      []bool
	cursor    int
	threshold float64
	width     int
	height    int
	accepted  bool
}

// New returns a model editing a copy of mask over bp. A nil mask starts
// with nothing flagged. threshold is the outlier cut used by auto-flagging,
// in robust standard deviations.
func New(bp, freqs []float64, mask []bool, threshold float64) Model {
	m := Model{
		bp:        bp,
		freqs:     freqs,
		mask:      make([]bool, len(bp)),
		threshold: threshold,
		width:     80,
		height:    24,
	}
	copy(m.mask, mask)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.bp)
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.accepted = true
		return m, tea.Quit
	case "left", "h":
		m.cursor = max(0, m.cursor-1)
	case "right", "l":
		m.cursor = min(n-1, m.cursor+1)
	case "H", "pgup":
		m.cursor = max(0, m.cursor-10)
	case "L", "pgdown":
		m.cursor = min(n-1, m.cursor+10)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = n - 1
	case " ", "space":
		if n > 0 {
			m.mask[m.cursor] = !m.mask[m.cursor]
		}
	case "a":
		for i, bad := range AutoFlag(m.bp, m.threshold) {
			m.mask[i] = m.mask[i] || bad
		}
	case "c":
		for i := range m.mask {
			m.mask[i] = false
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.bp) == 0 {
		return dim.Render("no channels")
	}

	graphWidth := max(10, m.width-16)
	graphHeight := max(4, m.height-12)

	var sb strings.Builder
	sb.WriteString(title.Render("channel flagger"))
	sb.WriteString("\n\n")
	sb.WriteString(bandpass.ASCII(m.bp, nil, graphWidth, graphHeight))
	sb.WriteString("\n")
	sb.WriteString(bandpass.MaskStrip(m.mask, graphWidth, m.cursor))
	sb.WriteString("\n\n")

	state := dim.Render("ok")
	if m.mask[m.cursor] {
		state = flagged.Render("flagged")
	}
	status := fmt.Sprintf("chan %s  %s  bp %s  %s  %s",
		value.Render(fmt.Sprintf("%d", m.cursor)),
		value.Render(m.freqLabel()),
		value.Render(fmt.Sprintf("%.4g", m.bp[m.cursor])),
		state,
		dim.Render(fmt.Sprintf("%d/%d flagged", bandpass.Flagged(m.mask), len(m.mask))),
	)
	sb.WriteString(panel.Render(status))
	sb.WriteString("\n")
	sb.WriteString(dim.Render("←/→ move  H/L jump  space toggle  a auto  c clear  enter accept  q quit"))
	return sb.String()
}

func (m Model) freqLabel() string {
	if m.cursor < len(m.freqs) {
		return fmt.Sprintf("%.3f MHz", m.freqs[m.cursor])
	}
	return "-"
}

// Mask returns the edited mask.
func (m Model) Mask() []bool { return m.mask }

// Cursor returns the channel under the cursor.
func (m Model) Cursor() int { return m.cursor }

// Accepted reports whether the user confirmed the mask.
func (m Model) Accepted() bool { return m.accepted }

// Run starts the flagger on the terminal and returns the accepted mask.
func Run(bp, freqs []float64, mask []bool, threshold float64) ([]bool, error) {
	final, err := tea.NewProgram(New(bp, freqs, mask, threshold), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	fm := final.(Model)
	if !fm.Accepted() {
		return nil, ErrAborted
	}
	return fm.Mask(), nil
}

// AutoFlag marks channels deviating from the median bandpass by more than
// threshold robust standard deviations (scaled median absolute deviation).
// With zero spread every channel off the median is flagged.
func AutoFlag(bp []float64, threshold float64) []bool {
	mask := make([]bool, len(bp))
	if len(bp) == 0 {
		return mask
	}

	med := median(bp)
	dev := make([]float64, len(bp))
	for i, v := range bp {
		dev[i] = math.Abs(v - med)
	}
	sigma := madScale * median(dev)

	for i, d := range dev {
		if sigma == 0 {
			mask[i] = d > 0
		} else {
			mask[i] = d > threshold*sigma
		}
	}
	return mask
}

func median(v []float64) float64 {
	sorted := append([]float64(nil), v...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
