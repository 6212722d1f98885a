package verify

import (
	"github.com/joseph-ayodele/blueprint-verify/constants"
	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
)

// Aggregate reduces per-dimension decisions to one document verdict with
// fixed precedence: any REJECT wins, then any REVIEW_REQUIRED, otherwise
// AUTO_ACCEPTED. Callers must not pass an empty list; zero usable
// dimensions is a fatal condition handled before aggregation.
func Aggregate(dims []entity.Dimension) constants.DocumentDecision {
	hasReview := false
	for _, dim := range dims {
		switch dim.Decision {
		case constants.DecisionReject:
			return constants.DocumentRejected
		case constants.DecisionReviewRequired:
			hasReview = true
		}
	}
	if hasReview {
		return constants.DocumentReviewRequired
	}
	return constants.DocumentAutoAccepted
}
