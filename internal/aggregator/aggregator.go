package aggregator

import "strconv"

// Weights of the overall score. The defaults sum to 1.0.
type Weights struct {
	Clarity      float64
	Relevance    float64
	Accuracy     float64
	Completeness float64
	Empathy      float64
	Sentiment    float64
	Resolution   float64
}

func DefaultWeights() Weights {
	return Weights{
		Clarity:      0.18,
		Relevance:    0.18,
		Accuracy:     0.14,
		Completeness: 0.16,
		Empathy:      0.12,
		Sentiment:    0.12,
		Resolution:   0.10,
	}
}

// Scores are the transcript-level inputs of the overall score.
type Scores struct {
	Clarity        float64
	Relevance      float64
	Accuracy       float64
	Completeness   float64
	Empathy        float64
	SentimentScore float64
	Resolution     bool
}

type Aggregator struct {
	Weights Weights
}

func NewAggregator(weights Weights) *Aggregator {
	return &Aggregator{
		Weights: weights,
	}
}

// Overall combines the scores linearly. The sum is rounded but not clamped.
func (a *Aggregator) Overall(s Scores) float64 {
	resolution := 0.0
	if s.Resolution {
		resolution = 1.0
	}

	overall := s.Clarity*a.Weights.Clarity +
		s.Relevance*a.Weights.Relevance +
		s.Accuracy*a.Weights.Accuracy +
		s.Completeness*a.Weights.Completeness +
		s.Empathy*a.Weights.Empathy +
		s.SentimentScore*a.Weights.Sentiment +
		resolution*a.Weights.Resolution

	return Round(overall, 3)
}

// WithZeroDefault returns values, or a single 0.0 entry when values is empty.
func WithZeroDefault(values []float64) []float64 {
	if len(values) == 0 {
		return []float64{0.0}
	}
	return values
}

// Mean is the arithmetic mean of a series. An empty series averages to 0.0
// through WithZeroDefault.
func Mean(values []float64) float64 {
	values = WithZeroDefault(values)

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Round rounds the exact binary value to the given number of decimals.
// Exact ties go to the even digit, so 0.0625 rounds to 0.062.
func Round(value float64, decimals int) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(value, 'f', decimals, 64), 64)
	return rounded
}
