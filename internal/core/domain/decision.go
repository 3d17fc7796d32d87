package domain

// DecisionReason classifies why an authorization check came out the way it
// did. The boolean check methods collapse both negative reasons to false so
// responses never leak whether a role is unknown; logs and internal
// reporting keep the distinction.
type DecisionReason string

const (
	ReasonGranted     DecisionReason = "granted"
	ReasonDenied      DecisionReason = "denied"
	ReasonUnknownRole DecisionReason = "unknown_role"
)

// Decision is the detailed result of a permission or resource check.
type Decision struct {
	Allowed bool
	Reason  DecisionReason
}

func Grant() Decision           { return Decision{Allowed: true, Reason: ReasonGranted} }
func Deny() Decision            { return Decision{Reason: ReasonDenied} }
func DenyUnknownRole() Decision { return Decision{Reason: ReasonUnknownRole} }
