package constants

// Decision is the per-field verdict assigned by the confidence policy.
type Decision string

// Stable values (these exact strings appear in the output contract).
const (
	DecisionAutoAccept     Decision = "AUTO_ACCEPT"
	DecisionReviewRequired Decision = "REVIEW_REQUIRED"
	DecisionReject         Decision = "REJECT"
)

// DocumentDecision is the worst-case roll-up of all field decisions.
type DocumentDecision string

const (
	DocumentAutoAccepted   DocumentDecision = "AUTO_ACCEPTED"
	DocumentReviewRequired DocumentDecision = "REVIEW_REQUIRED"
	DocumentRejected       DocumentDecision = "REJECTED"
)
