package commands

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// saveLearningCurve plots loss against update step and writes it to filename.
// The image format follows the file extension.
func saveLearningCurve(losses []float64, filename string) error {
	if len(losses) == 0 {
		return fmt.Errorf("plot %s: no training updates", filename)
	}
	p := plot.New()
	p.Title.Text = "Training loss"
	p.X.Label.Text = "Update"
	p.Y.Label.Text = "Cross-entropy"

	pts := make(plotter.XYs, len(losses))
	for i, l := range losses {
		pts[i].X = float64(i + 1)
		pts[i].Y = l
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plot %s: %w", filename, err)
	}
	l.Color = color.RGBA{R: 255, A: 255}
	l.LineStyle.Width = vg.Points(1)
	p.Add(l)
	p.Add(plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("plot %s: %w", filename, err)
	}
	return nil
}
