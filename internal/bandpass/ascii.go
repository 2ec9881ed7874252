package bandpass

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// ASCII renders bp as a terminal line graph of the given size with a
// strip underneath marking flagged channels.
func ASCII(bp []float64, mask []bool, width, height int) string {
	if len(bp) == 0 {
		return ""
	}
	caption := fmt.Sprintf("bandpass, %d channels", len(bp))
	if n := Flagged(mask); n > 0 {
		caption += fmt.Sprintf(", %d flagged", n)
	}

	graph := asciigraph.Plot(bp,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)

	var sb strings.Builder
	sb.WriteString(graph)
	if Flagged(mask) > 0 {
		sb.WriteString("\n")
		sb.WriteString(MaskStrip(mask, width, -1))
	}
	return sb.String()
}

// MaskStrip compresses mask into width columns: 'x' where any channel in
// the column is flagged, '-' elsewhere. The column holding channel cursor
// is drawn as '^' unless cursor is negative.
func MaskStrip(mask []bool, width, cursor int) string {
	n := len(mask)
	if n == 0 || width <= 0 {
		return ""
	}
	if width > n {
		width = n
	}

	cursorCol := -1
	if cursor >= 0 && cursor < n {
		cursorCol = cursor * width / n
	}

	strip := make([]byte, width)
	for col := range strip {
		from, to := col*n/width, (col+1)*n/width
		strip[col] = '-'
		for ch := from; ch < to; ch++ {
			if mask[ch] {
				strip[col] = 'x'
				break
			}
		}
		if col == cursorCol {
			strip[col] = '^'
		}
	}
	return string(strip)
}
