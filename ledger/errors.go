package ledger

import "errors"

var (
	// Authorization errors
	ErrNotOwner = errors.New("ledger: caller is not the owner")

	// Policy errors
	ErrPaused       = errors.New("ledger: transfers are paused")
	ErrBlacklisted  = errors.New("ledger: account is blacklisted")
	ErrSelfTransfer = errors.New("ledger: source and destination are identical")
	ErrZeroAmount   = errors.New("ledger: amount is zero")

	// Balance errors
	ErrInsufficientBalance   = errors.New("ledger: insufficient balance")
	ErrInsufficientAllowance = errors.New("ledger: insufficient allowance")

	// Arithmetic errors
	ErrOverflow = errors.New("ledger: arithmetic overflow")

	// Input shape errors
	ErrBatchLengthMismatch = errors.New("ledger: recipients and amounts length mismatch")
)
