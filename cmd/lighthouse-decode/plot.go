package main

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l3angles"
)

// plotAngles renders one scatter point per collated (x, y) angle-tick
// pair, one color per sensor, and saves it as a PNG at path.
func plotAngles(path string, station l1pulse.Channel, angles map[uint8]*l3angles.SensorAngles) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Station %s angle scatter", station)
	p.X.Label.Text = "X angle ticks"
	p.Y.Label.Text = "Y angle ticks"

	ids := make([]uint8, 0, len(angles))
	for id := range angles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	colors := generateColors(len(ids))

	for i, id := range ids {
		a := angles[id]
		pts := make(plotter.XYs, len(a.XTicks))
		for j := range a.XTicks {
			pts[j] = plotter.XY{X: float64(a.XTicks[j]), Y: float64(a.YTicks[j])}
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("lighthouse plot: building sensor %d series: %w", id, err)
		}
		scatter.Color = colors[i]
		scatter.Radius = vg.Points(2)
		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("sensor %d", id), scatter)
	}

	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(10*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("lighthouse plot: saving %s: %w", path, err)
	}
	return nil
}

func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range).
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := uint8(l * 255)
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	toChannel := func(t float64) uint8 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6.0:
			return uint8((p + (q-p)*6*t) * 255)
		case t < 1.0/2.0:
			return uint8(q * 255)
		case t < 2.0/3.0:
			return uint8((p + (q-p)*(2.0/3.0-t)*6) * 255)
		default:
			return uint8(p * 255)
		}
	}

	return toChannel(h + 1.0/3.0), toChannel(h), toChannel(h - 1.0/3.0)
}
