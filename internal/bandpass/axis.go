package bandpass

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const channelAxisLabel = "Channel Numbers"

// drawWithChannelAxis draws p below a strip reserved for a second
// horizontal axis and draws that axis along the top of the data area,
// labelled with channel numbers. Both axes share the data area width, so
// channel ticks line up with the frequencies they belong to.
func drawWithChannelAxis(p *plot.Plot, c draw.Canvas, chans []float64) {
	tickSty := p.X.Tick.Label
	tickSty.XAlign = draw.XCenter
	tickSty.YAlign = draw.YBottom

	labelSty := p.X.Label.TextStyle
	labelSty.XAlign = draw.XCenter
	labelSty.YAlign = draw.YBottom

	tickLen := p.X.Tick.Length
	gap := p.X.Label.Padding
	reserve := tickLen + tickSty.Height("0") + labelSty.Height(channelAxisLabel) + 2*gap

	area := draw.Crop(c, 0, 0, 0, -reserve)
	p.Draw(area)
	da := p.DataCanvas(area)

	lo, hi := span(chans)
	y := da.Max.Y
	width := da.Max.X - da.Min.X
	c.StrokeLine2(p.X.LineStyle, da.Min.X, y, da.Max.X, y)

	for _, t := range p.X.Tick.Marker.Ticks(lo, hi) {
		if t.Value < lo || t.Value > hi {
			continue
		}
		x := da.Min.X + vg.Length((t.Value-lo)/(hi-lo))*width
		if t.IsMinor() {
			c.StrokeLine2(p.X.Tick.LineStyle, x, y, x, y+tickLen/2)
			continue
		}
		c.StrokeLine2(p.X.Tick.LineStyle, x, y, x, y+tickLen)
		c.FillText(tickSty, vg.Point{X: x, Y: y + tickLen + gap/2}, t.Label)
	}

	labelY := y + tickLen + tickSty.Height("0") + gap
	c.FillText(labelSty, vg.Point{X: da.Min.X + width/2, Y: labelY}, channelAxisLabel)
}
