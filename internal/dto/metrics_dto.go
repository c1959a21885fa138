package dto

type EvaluationMetricsDTO struct {
	AverageScoresByBand map[string]float64 `json:"average_scores_by_band"`
	BandDistribution    map[string]int     `json:"band_distribution"`
}
