package verify

import (
	"github.com/joseph-ayodele/blueprint-verify/constants"
	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
)

// ConfidencePolicy maps a grounded confidence value to a three-way verdict.
// Thresholds are deployment configuration so trust can be recalibrated
// without a code change.
type ConfidencePolicy struct {
	acceptThreshold float64
	reviewThreshold float64
}

func NewConfidencePolicy(acceptThreshold, reviewThreshold float64) *ConfidencePolicy {
	if acceptThreshold <= 0 {
		acceptThreshold = 0.85
	}
	if reviewThreshold <= 0 {
		reviewThreshold = 0.6
	}
	return &ConfidencePolicy{
		acceptThreshold: acceptThreshold,
		reviewThreshold: reviewThreshold,
	}
}

func (p *ConfidencePolicy) Decide(confidence float64) constants.Decision {
	switch {
	case confidence >= p.acceptThreshold:
		return constants.DecisionAutoAccept
	case confidence >= p.reviewThreshold:
		return constants.DecisionReviewRequired
	default:
		return constants.DecisionReject
	}
}

// Apply annotates every dimension with its decision.
func (p *ConfidencePolicy) Apply(dims []entity.Dimension) []entity.Dimension {
	out := make([]entity.Dimension, len(dims))
	for i, dim := range dims {
		dim.Decision = p.Decide(dim.Confidence)
		out[i] = dim
	}
	return out
}
