package service

import (
	"strconv"
	"sync"
)

// EvaluationMetrics keeps score distributions per band and criterion for
// the lifetime of the process.
type EvaluationMetrics struct {
	mu                 sync.RWMutex
	scoreDistributions map[string][]float64
	bandCounts         map[string]int
}

func NewEvaluationMetrics() *EvaluationMetrics {
	return &EvaluationMetrics{
		scoreDistributions: make(map[string][]float64),
		bandCounts:         make(map[string]int),
	}
}

func (m *EvaluationMetrics) TrackEvaluation(band, criteria string, score float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := band + "-" + criteria
	m.scoreDistributions[key] = append(m.scoreDistributions[key], score)
	m.bandCounts[band]++
}

// AverageScoresByBand is keyed "<band>-<criteria>".
func (m *EvaluationMetrics) AverageScoresByBand() map[string]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	averages := make(map[string]float64, len(m.scoreDistributions))
	for key, scores := range m.scoreDistributions {
		if len(scores) == 0 {
			averages[key] = 0
			continue
		}
		var sum float64
		for _, s := range scores {
			sum += s
		}
		averages[key] = sum / float64(len(scores))
	}
	return averages
}

func (m *EvaluationMetrics) BandDistribution() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int, len(m.bandCounts))
	for band, n := range m.bandCounts {
		out[band] = n
	}
	return out
}

func (m *EvaluationMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoreDistributions = make(map[string][]float64)
	m.bandCounts = make(map[string]int)
}

// FormatBand renders a band score with at least one decimal place,
// e.g. 7 -> "7.0", 6.5 -> "6.5".
func FormatBand(band float64) string {
	if band == float64(int64(band)) {
		return strconv.FormatFloat(band, 'f', 1, 64)
	}
	return strconv.FormatFloat(band, 'f', -1, 64)
}
