package types

// SignOutcome tags the result of a signing call.
type SignOutcome uint8

const (
	// SignOutcomeSigned means the signature was produced and checked
	// against the entry's own certificate.
	SignOutcomeSigned SignOutcome = iota + 1
	// SignOutcomeVerificationFailed means a signature was produced but did
	// not verify against the entry's certificate; no signature is returned.
	SignOutcomeVerificationFailed
)

// String returns the string form of the outcome.
func (o SignOutcome) String() string {
	switch o {
	case SignOutcomeSigned:
		return "signed"
	case SignOutcomeVerificationFailed:
		return "verification failed"
	default:
		return "unknown"
	}
}

// SignResult is returned by signing. Signature is set only when Outcome
// is SignOutcomeSigned.
type SignResult struct {
	Outcome   SignOutcome
	Signature []byte
}

// Signed reports whether the result carries a verified signature.
func (r SignResult) Signed() bool { return r.Outcome == SignOutcomeSigned }
