package ledger

// Policy is the configurable compliance surface. The source behavior evolved
// as two overlapping feature sets; rather than forking implementations, the
// divergent checks are named toggles.
type Policy struct {
	// RejectZeroAmount rejects zero-amount transfers and mints.
	RejectZeroAmount bool

	// MintChecksBlacklist rejects minting to a blacklisted account.
	MintChecksBlacklist bool

	// PauseBlocksMint extends the pause gate to mint and burn. The
	// reference behavior gates only transfers; that asymmetry is a known
	// quirk, preserved by the default.
	PauseBlocksMint bool
}

// DefaultPolicy returns the reference behavior: minting to a blacklisted
// account is rejected, zero amounts are allowed, and pause gates transfers
// but not mint/burn.
func DefaultPolicy() Policy {
	return Policy{
		RejectZeroAmount:    false,
		MintChecksBlacklist: true,
		PauseBlocksMint:     false,
	}
}
