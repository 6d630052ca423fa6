package analysis

import "github.com/povarna/generative-ai-agents/conversation-analyzer/internal/aggregator"

// ResponseTimeEstimator produces synthetic response times. Transcripts carry
// no timestamps yet, so the values come from two constants and must not be
// read as telemetry.
//
// TODO: derive both averages from message timestamps once transcripts carry them.
type ResponseTimeEstimator struct {
	SecondsPerExchange float64
	UserShare          float64
}

func DefaultResponseTimeEstimator() ResponseTimeEstimator {
	return ResponseTimeEstimator{
		SecondsPerExchange: 20,
		UserShare:          0.4,
	}
}

// Estimate returns the average user and assistant response seconds.
func (e ResponseTimeEstimator) Estimate() (user float64, assistant float64) {
	user = aggregator.Round(e.SecondsPerExchange*e.UserShare, 1)
	assistant = aggregator.Round(e.SecondsPerExchange*(1-e.UserShare), 1)
	return user, assistant
}
