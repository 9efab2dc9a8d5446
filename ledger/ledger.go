// Package ledger implements a token ledger state-transition engine: account
// balances, delegated spending allowances, and a total-supply counter behind
// an owner-gated administrative layer (mint, pause, blacklist).
//
// The engine is pure with respect to its environment: it trusts the caller
// identifier supplied per operation, performs no I/O, and assumes the
// enclosing host context makes each call all-or-nothing. Within a single
// operation all validation precedes all writes, so a failing operation never
// leaves a partial mutation behind. Multi-step operations (TransferFrom,
// BatchTransfer) additionally rely on the host discarding writes from an
// aborted call; see the host package.
//
// Amounts are unsigned 256-bit integers. All mutation uses checked
// arithmetic: overflow and underflow are reported as ErrOverflow, never
// wrapped or saturated.
package ledger

import "github.com/holiman/uint256"

// Ledger applies invariant-checked operations to a Store. One Ledger owns
// one Store; calls are serialized by the host, so the Ledger does no locking.
type Ledger struct {
	store  Store
	policy Policy
}

// New creates a ledger over an existing store. The store's owner account is
// the only caller authorized for mint, pause, unpause and blacklist updates.
func New(store Store, policy Policy) *Ledger {
	return &Ledger{store: store, policy: policy}
}

// Store returns the underlying store handle.
func (l *Ledger) Store() Store { return l.store }

// Policy returns the compliance policy in effect.
func (l *Ledger) Policy() Policy { return l.policy }

// requireOwner gates owner-only operations.
func (l *Ledger) requireOwner(caller Account) error {
	if caller != l.store.Owner() {
		return ErrNotOwner
	}
	return nil
}

// checkTransferable enforces pause and blacklist policy before value
// movement. It does not gate mint/burn unless the policy says so.
func (l *Ledger) checkTransferable(from, to Account) error {
	if l.store.Paused() {
		return ErrPaused
	}
	if l.store.Blacklisted(from) || l.store.Blacklisted(to) {
		return ErrBlacklisted
	}
	return nil
}

// moveValue is the invariant-checked transfer primitive. Steps 1-5 are pure
// computation; balances are written only after every check has passed.
func (l *Ledger) moveValue(from, to Account, amount *uint256.Int) (TransferEvent, error) {
	if from == to {
		return TransferEvent{}, ErrSelfTransfer
	}
	if err := l.checkTransferable(from, to); err != nil {
		return TransferEvent{}, err
	}
	if l.policy.RejectZeroAmount && amount.IsZero() {
		return TransferEvent{}, ErrZeroAmount
	}

	fromBalance := l.store.Balance(from)
	if fromBalance.Lt(amount) {
		return TransferEvent{}, ErrInsufficientBalance
	}

	// Unreachable after the balance check, but kept so the primitive is
	// safe on its own terms.
	newFrom, underflow := new(uint256.Int).SubOverflow(fromBalance, amount)
	if underflow {
		return TransferEvent{}, ErrOverflow
	}

	newTo, overflow := new(uint256.Int).AddOverflow(l.store.Balance(to), amount)
	if overflow {
		return TransferEvent{}, ErrOverflow
	}

	l.store.SetBalance(from, newFrom)
	l.store.SetBalance(to, newTo)

	return TransferEvent{From: from, To: to, Amount: amount.Clone()}, nil
}

// Transfer moves amount from the caller to another account.
func (l *Ledger) Transfer(caller, to Account, amount *uint256.Int) (TransferEvent, error) {
	return l.moveValue(caller, to, amount)
}

// Approve overwrites the allowance granted by the caller to spender. The
// write is an exact overwrite, never incremental, and there is no balance
// check: over-approval is legal.
func (l *Ledger) Approve(caller, spender Account, amount *uint256.Int) (ApprovalEvent, error) {
	l.store.SetAllowance(caller, spender, amount)
	return ApprovalEvent{Owner: caller, Spender: spender, Amount: amount.Clone()}, nil
}

// TransferFrom moves amount from one account to another on the strength of
// an allowance granted to the caller. On success the allowance decreases by
// exactly the transferred amount; it is never auto-incremented.
func (l *Ledger) TransferFrom(caller, from, to Account, amount *uint256.Int) (TransferEvent, error) {
	allowance := l.store.Allowance(from, caller)
	if allowance.Lt(amount) {
		return TransferEvent{}, ErrInsufficientAllowance
	}

	ev, err := l.moveValue(from, to, amount)
	if err != nil {
		return TransferEvent{}, err
	}

	newAllowance, underflow := new(uint256.Int).SubOverflow(allowance, amount)
	if underflow {
		return TransferEvent{}, ErrOverflow
	}
	l.store.SetAllowance(from, caller, newAllowance)

	return ev, nil
}

// BatchTransfer moves amounts from the caller to each recipient in order.
// A length mismatch fails before any state is touched. The first failing
// pair aborts the call with that error; earlier pairs are not rolled back
// here — the host discards every write of an aborted call.
func (l *Ledger) BatchTransfer(caller Account, recipients []Account, amounts []*uint256.Int) ([]TransferEvent, error) {
	if len(recipients) != len(amounts) {
		return nil, ErrBatchLengthMismatch
	}

	events := make([]TransferEvent, 0, len(recipients))
	for i, to := range recipients {
		ev, err := l.moveValue(caller, to, amounts[i])
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Mint creates amount new tokens at an account. Owner only.
func (l *Ledger) Mint(caller, to Account, amount *uint256.Int) (MintEvent, error) {
	if err := l.requireOwner(caller); err != nil {
		return MintEvent{}, err
	}
	if l.policy.PauseBlocksMint && l.store.Paused() {
		return MintEvent{}, ErrPaused
	}
	if l.policy.MintChecksBlacklist && l.store.Blacklisted(to) {
		return MintEvent{}, ErrBlacklisted
	}
	if l.policy.RejectZeroAmount && amount.IsZero() {
		return MintEvent{}, ErrZeroAmount
	}

	newBalance, overflow := new(uint256.Int).AddOverflow(l.store.Balance(to), amount)
	if overflow {
		return MintEvent{}, ErrOverflow
	}
	newSupply, overflow := new(uint256.Int).AddOverflow(l.store.TotalSupply(), amount)
	if overflow {
		return MintEvent{}, ErrOverflow
	}

	l.store.SetBalance(to, newBalance)
	l.store.SetTotalSupply(newSupply)

	return MintEvent{To: to, Amount: amount.Clone()}, nil
}

// Burn destroys amount tokens from the caller's own balance. Any caller may
// burn; there is no owner gate, and in the reference behavior no pause gate.
func (l *Ledger) Burn(caller Account, amount *uint256.Int) (BurnEvent, error) {
	if l.policy.PauseBlocksMint && l.store.Paused() {
		return BurnEvent{}, ErrPaused
	}

	balance := l.store.Balance(caller)
	if balance.Lt(amount) {
		return BurnEvent{}, ErrInsufficientBalance
	}

	newBalance, underflow := new(uint256.Int).SubOverflow(balance, amount)
	if underflow {
		return BurnEvent{}, ErrOverflow
	}
	newSupply, underflow := new(uint256.Int).SubOverflow(l.store.TotalSupply(), amount)
	if underflow {
		return BurnEvent{}, ErrOverflow
	}

	l.store.SetBalance(caller, newBalance)
	l.store.SetTotalSupply(newSupply)

	return BurnEvent{From: caller, Amount: amount.Clone()}, nil
}

// Pause sets the pause flag. Owner only.
func (l *Ledger) Pause(caller Account) (PausedEvent, error) {
	if err := l.requireOwner(caller); err != nil {
		return PausedEvent{}, err
	}
	l.store.SetPaused(true)
	return PausedEvent{Paused: true}, nil
}

// Unpause clears the pause flag. Owner only.
func (l *Ledger) Unpause(caller Account) (PausedEvent, error) {
	if err := l.requireOwner(caller); err != nil {
		return PausedEvent{}, err
	}
	l.store.SetPaused(false)
	return PausedEvent{Paused: false}, nil
}

// SetBlacklist writes a blacklist entry. Owner only.
func (l *Ledger) SetBlacklist(caller, account Account, blacklisted bool) (BlacklistUpdatedEvent, error) {
	if err := l.requireOwner(caller); err != nil {
		return BlacklistUpdatedEvent{}, err
	}
	l.store.SetBlacklisted(account, blacklisted)
	return BlacklistUpdatedEvent{Account: account, Blacklisted: blacklisted}, nil
}

// BalanceOf returns the balance of an account, zero if absent.
func (l *Ledger) BalanceOf(account Account) *uint256.Int {
	return l.store.Balance(account)
}

// Allowance returns the amount owner has approved spender to move.
func (l *Ledger) Allowance(owner, spender Account) *uint256.Int {
	return l.store.Allowance(owner, spender)
}

// TotalSupply returns the supply counter.
func (l *Ledger) TotalSupply() *uint256.Int { return l.store.TotalSupply() }

// Owner returns the account that created the ledger.
func (l *Ledger) Owner() Account { return l.store.Owner() }

// IsPaused returns the pause flag.
func (l *Ledger) IsPaused() bool { return l.store.Paused() }

// IsBlacklisted returns the blacklist flag for an account.
func (l *Ledger) IsBlacklisted(account Account) bool { return l.store.Blacklisted(account) }
