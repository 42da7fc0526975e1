// Package chart renders a ticker's close-price series with its analyst
// opinions marked on the time axis.
package chart

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"saveticker-sync/internal/datefmt"
	"saveticker-sync/internal/types"
)

// Render writes a PNG chart of the close series for symbol, annotated
// with each opinion at its date. Opinions whose dates cannot be parsed
// or fall outside the series are skipped.
func Render(w io.Writer, symbol string, candles []types.Candle, opinions []types.Opinion) error {
	if len(candles) == 0 {
		return fmt.Errorf("no candles for %s", symbol)
	}

	xs := make([]time.Time, len(candles))
	ys := make([]float64, len(candles))
	for i, c := range candles {
		xs[i] = time.Unix(c.Ts, 0).UTC()
		ys[i] = c.Close
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    symbol,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
			},
		},
	}

	var marks []chart.Value2
	for _, op := range opinions {
		t, err := datefmt.ParseCanonical(op.OpinionDate)
		if err != nil {
			continue
		}
		y, ok := closeAt(candles, t)
		if !ok {
			continue
		}
		marks = append(marks, chart.Value2{
			XValue: chart.TimeToFloat64(t),
			YValue: y,
			Label:  annotationLabel(op),
			Style: chart.Style{
				StrokeColor: directionColor(op.Opinion),
				FontColor:   directionColor(op.Opinion),
			},
		})
	}
	if len(marks) > 0 {
		series = append(series, chart.AnnotationSeries{Annotations: marks})
	}

	graph := chart.Chart{
		Title:  symbol,
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: series,
	}
	return graph.Render(chart.PNG, w)
}

// closeAt returns the close of the first candle at or after t.
func closeAt(candles []types.Candle, t time.Time) (float64, bool) {
	ts := t.Unix()
	for _, c := range candles {
		if c.Ts >= ts {
			return c.Close, true
		}
	}
	return 0, false
}

func annotationLabel(op types.Opinion) string {
	label := string(op.Opinion)
	if op.Bank != "" {
		label = label + " " + op.Bank
	}
	return label
}

func directionColor(d types.Direction) drawing.Color {
	switch d {
	case types.Upgrade:
		return chart.ColorGreen
	case types.Downgrade:
		return chart.ColorRed
	default:
		return chart.ColorAlternateGray
	}
}
