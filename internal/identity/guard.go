package identity

// Decision is the outcome of evaluating a protected route against a resolved
// identity.
type Decision int

const (
	// DecisionPending: identity still loading, render nothing, issue no
	// redirect. The only state that never produces a user-visible redirect.
	DecisionPending Decision = iota

	// DecisionDeniedUnauth: no authenticated user, send to sign-in.
	DecisionDeniedUnauth

	// DecisionDeniedWrongRole: authenticated but the role is missing or not
	// in the route's allowed set, send to the not-authorized destination.
	DecisionDeniedWrongRole

	// DecisionAdmitted: render the protected content.
	DecisionAdmitted
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionDeniedUnauth:
		return "denied_unauth"
	case DecisionDeniedWrongRole:
		return "denied_wrong_role"
	case DecisionAdmitted:
		return "admitted"
	}
	return "unknown"
}

// Evaluate is the access guard: a pure decision over the identity and a
// route's allowed roles. It must be re-evaluated on every identity change and
// every navigation, never memoized. An authenticated user without a role is
// denied on role grounds, not bounced to sign-in.
func Evaluate(id Identity, allowed ...Role) Decision {
	if id.Loading {
		return DecisionPending
	}
	if id.User == nil {
		return DecisionDeniedUnauth
	}
	if !id.Role.Valid() {
		return DecisionDeniedWrongRole
	}
	for _, role := range allowed {
		if role == id.Role {
			return DecisionAdmitted
		}
	}
	return DecisionDeniedWrongRole
}
