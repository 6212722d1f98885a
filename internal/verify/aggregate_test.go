package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/blueprint-verify/constants"
	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
)

func dimsWithDecisions(decisions ...constants.Decision) []entity.Dimension {
	dims := make([]entity.Dimension, len(decisions))
	for i, d := range decisions {
		dims[i] = entity.Dimension{Type: constants.Length, Decision: d}
	}
	return dims
}

func TestAggregatePrecedence(t *testing.T) {
	tests := []struct {
		name      string
		decisions []constants.Decision
		want      constants.DocumentDecision
	}{
		{
			name:      "all accepted",
			decisions: []constants.Decision{constants.DecisionAutoAccept, constants.DecisionAutoAccept},
			want:      constants.DocumentAutoAccepted,
		},
		{
			name:      "single review dominates accepts",
			decisions: []constants.Decision{constants.DecisionAutoAccept, constants.DecisionReviewRequired, constants.DecisionAutoAccept},
			want:      constants.DocumentReviewRequired,
		},
		{
			name:      "single reject dominates everything",
			decisions: []constants.Decision{constants.DecisionAutoAccept, constants.DecisionReviewRequired, constants.DecisionReject},
			want:      constants.DocumentRejected,
		},
		{
			name:      "reject first still wins",
			decisions: []constants.Decision{constants.DecisionReject, constants.DecisionAutoAccept},
			want:      constants.DocumentRejected,
		},
		{
			name:      "only reviews",
			decisions: []constants.Decision{constants.DecisionReviewRequired},
			want:      constants.DocumentReviewRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(dimsWithDecisions(tt.decisions...))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	forward := dimsWithDecisions(constants.DecisionAutoAccept, constants.DecisionReviewRequired, constants.DecisionReject)
	backward := dimsWithDecisions(constants.DecisionReject, constants.DecisionReviewRequired, constants.DecisionAutoAccept)

	assert.Equal(t, Aggregate(forward), Aggregate(backward))
}
