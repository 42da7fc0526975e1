package chart

import (
	"bytes"
	"testing"
	"time"

	"saveticker-sync/internal/types"
)

func testCandles() []types.Candle {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	candles := make([]types.Candle, 10)
	for i := range candles {
		candles[i] = types.Candle{
			Ts:    base.AddDate(0, 0, i).Unix(),
			Close: 100 + float64(i),
		}
	}
	return candles
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	opinions := []types.Opinion{
		{Symbol: "AAPL", Opinion: types.Upgrade, OpinionDate: "2024.01.04 10:00:00", Bank: "Goldman Sachs", NewsID: 9},
		{Symbol: "AAPL", Opinion: types.Downgrade, OpinionDate: "2024.01.08 10:00:00", NewsID: 5},
	}

	if err := Render(&buf, "AAPL", testCandles(), opinions); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Expected PNG output")
	}
}

func TestRenderSkipsUnplaceableOpinions(t *testing.T) {
	var buf bytes.Buffer
	opinions := []types.Opinion{
		// Unparsable date and a date past the series must not fail the render.
		{Symbol: "AAPL", Opinion: types.Neutral, OpinionDate: "not a date"},
		{Symbol: "AAPL", Opinion: types.Upgrade, OpinionDate: "2030.01.01 00:00:00"},
	}

	if err := Render(&buf, "AAPL", testCandles(), opinions); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Expected chart output")
	}
}

func TestRenderNoCandles(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "AAPL", nil, nil); err == nil {
		t.Error("Expected error when no candles are available")
	}
}

func TestCloseAt(t *testing.T) {
	candles := testCandles()

	// Exact candle timestamp.
	y, ok := closeAt(candles, time.Unix(candles[3].Ts, 0))
	if !ok || y != candles[3].Close {
		t.Errorf("Expected close %f, got %f (ok=%v)", candles[3].Close, y, ok)
	}

	// Between candles: the next one answers.
	y, ok = closeAt(candles, time.Unix(candles[3].Ts+3600, 0))
	if !ok || y != candles[4].Close {
		t.Errorf("Expected next close %f, got %f (ok=%v)", candles[4].Close, y, ok)
	}

	// Past the series.
	if _, ok := closeAt(candles, time.Unix(candles[len(candles)-1].Ts+86400, 0)); ok {
		t.Error("Expected no close past the series")
	}
}

func TestAnnotationLabel(t *testing.T) {
	op := types.Opinion{Opinion: types.Upgrade, Bank: "Goldman Sachs"}
	if got := annotationLabel(op); got != "UPGRADE Goldman Sachs" {
		t.Errorf("Expected labeled annotation, got %q", got)
	}
	op.Bank = ""
	if got := annotationLabel(op); got != "UPGRADE" {
		t.Errorf("Expected bare direction, got %q", got)
	}
}
