package analysis

import (
	"fmt"
	"math"
	"sort"
)

// Summary captures aggregate metrics for one log table.
type Summary struct {
	Name          string  `json:"name"`
	Samples       int     `json:"samples"`
	FirstHour     float64 `json:"first_hour"`
	LastHour      float64 `json:"last_hour"`
	AvgLatencyMs  float64 `json:"avg_latency_ms"`
	MinLatencyMs  float64 `json:"min_latency_ms"`
	MaxLatencyMs  float64 `json:"max_latency_ms"`
	P50LatencyMs  float64 `json:"p50_latency_ms"`
	P95LatencyMs  float64 `json:"p95_latency_ms"`
	AvgLossPct    float64 `json:"avg_loss_pct"`
	MaxLossPct    float64 `json:"max_loss_pct"`
	Chronological bool    `json:"chronological"`
	// Counter totals from the echo client's "<n>sent"/"<n>lost" fields; rows that do not parse are skipped.
	SentTotal float64 `json:"sent_total,omitempty"`
	LostTotal float64 `json:"lost_total,omitempty"`
}

// Summarize computes a Summary for t. An empty table yields a zero Summary carrying only the name.
func Summarize(t *LogTable) Summary {
	s := Summary{Chronological: true}
	if t == nil {
		return s
	}
	s.Name = t.Name
	s.Samples = t.Len()
	if s.Samples == 0 {
		return s
	}
	lat := t.Latencies()
	loss := t.LossPercents()
	s.FirstHour = t.Records[0].DateTimeFloat
	s.LastHour = t.Records[s.Samples-1].DateTimeFloat
	s.AvgLatencyMs = avg(lat)
	s.MinLatencyMs = minVal(lat)
	s.MaxLatencyMs = maxVal(lat)
	s.P50LatencyMs = percentile(lat, 50)
	s.P95LatencyMs = percentile(lat, 95)
	s.AvgLossPct = avg(loss)
	s.MaxLossPct = maxVal(loss)
	s.Chronological = t.IsChronological()
	for _, r := range t.Records {
		if v, ok := parseCount(r.SentCount, "sent"); ok {
			s.SentTotal += v
		}
		if v, ok := parseCount(r.LostCount, "lost"); ok {
			s.LostTotal += v
		}
	}
	return s
}

// String renders the summary as a single log line.
func (s Summary) String() string {
	line := fmt.Sprintf("[%s] samples=%d hours=%.2f-%.2f latency avg=%.1fms p50=%.1fms p95=%.1fms max=%.1fms loss avg=%.2f%% max=%.2f%%",
		s.Name, s.Samples, s.FirstHour, s.LastHour, s.AvgLatencyMs, s.P50LatencyMs, s.P95LatencyMs, s.MaxLatencyMs, s.AvgLossPct, s.MaxLossPct)
	if s.SentTotal > 0 {
		line += fmt.Sprintf(" sent=%.0f lost=%.0f", s.SentTotal, s.LostTotal)
	}
	if !s.Chronological {
		line += " (not chronological)"
	}
	return line
}

func avg(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	s := 0.0
	for _, v := range a {
		s += v
	}
	return s / float64(len(a))
}

func minVal(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	m := a[0]
	for _, v := range a[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxVal(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	m := a[0]
	for _, v := range a[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// percentile uses the nearest-rank method.
func percentile(a []float64, p float64) float64 {
	if len(a) == 0 {
		return 0
	}
	cp := append([]float64(nil), a...)
	sort.Float64s(cp)
	idx := int(math.Ceil(p/100*float64(len(cp)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(cp) {
		idx = len(cp) - 1
	}
	return cp[idx]
}
