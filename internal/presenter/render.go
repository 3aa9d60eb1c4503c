package presenter

import (
	"errors"

	charts "github.com/vicanso/go-charts/v2"

	"FinSight/internal/domain/models"
)

// RenderOptions controls the rendered chart dimensions.
type RenderOptions struct {
	Width  int
	Height int
}

// RenderPNG draws the close history and the projected line as one PNG. The
// two series share the date axis; the projection is padded with nulls over
// the historical span so it starts where the history ends.
func RenderPNG(series models.TimeSeries, chart models.ChartSeries, opts RenderOptions) ([]byte, error) {
	closes := ClosePoints(series)
	if len(closes) < 2 {
		return nil, errors.New("not enough data points to render")
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}

	n := len(closes) + len(chart.Projected)
	labels := make([]string, 0, n)
	closeLine := make([]float64, 0, n)
	projLine := make([]float64, 0, n)

	null := charts.GetNullValue()
	for _, p := range closes {
		labels = append(labels, p.X)
		closeLine = append(closeLine, p.Y)
		projLine = append(projLine, null)
	}
	if len(chart.Projected) > 0 {
		// anchor the projection to the last close so the lines connect
		projLine[len(projLine)-1] = closes[len(closes)-1].Y
	}
	for _, p := range chart.Projected {
		labels = append(labels, p.X)
		closeLine = append(closeLine, null)
		projLine = append(projLine, p.Y)
	}

	split := len(labels) / 10
	if split < 2 {
		split = 2
	}

	painter, err := charts.LineRender([][]float64{closeLine, projLine},
		charts.TitleTextOptionFunc(series.Ticker+" close and projection"),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: []string{"Close", "Projected"}}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(opts.Width),
		charts.HeightOptionFunc(opts.Height),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
