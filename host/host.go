// Package host is the execution context the ledger core assumes: it
// serializes calls against a single ledger instance and makes each call
// all-or-nothing. Operations run against an overlay of the base store;
// the overlay commits only when the operation succeeds, so a failing call
// — including a batch that fails midway — leaves no trace in the base.
//
// Events returned by successful operations are handed to an Emitter.
// Delivery happens after commit; a delivery failure does not undo the call.
package host

import (
	"context"
	"log/slog"
	"sync"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-tokenledger/ledger"
)

// Emitter receives the domain events of a committed call.
type Emitter interface {
	Emit(ctx context.Context, events []ledger.Event) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(ctx context.Context, events []ledger.Event) error

// Emit calls the function.
func (f EmitterFunc) Emit(ctx context.Context, events []ledger.Event) error {
	return f(ctx, events)
}

// Host wraps a base store in the transactional contract the ledger core
// requires. One call runs to completion before the next begins.
type Host struct {
	mu      sync.Mutex
	base    ledger.Store
	policy  ledger.Policy
	emitter Emitter
	logger  *slog.Logger
}

// New creates a host over a base store. The emitter may be nil, in which
// case events are dropped after commit.
func New(base ledger.Store, policy ledger.Policy, emitter Emitter) *Host {
	return &Host{
		base:    base,
		policy:  policy,
		emitter: emitter,
		logger:  slog.Default(),
	}
}

// SetLogger replaces the host's logger.
func (h *Host) SetLogger(logger *slog.Logger) { h.logger = logger }

// Call runs one operation all-or-nothing. The operation sees an overlay of
// the base store; on success the overlay commits and the returned events go
// to the emitter, on failure every write is discarded.
func (h *Host) Call(ctx context.Context, op string, fn func(*ledger.Ledger) ([]ledger.Event, error)) ([]ledger.Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	overlay := NewOverlay(h.base)
	events, err := fn(ledger.New(overlay, h.policy))
	if err != nil {
		h.logger.Debug("call rejected", "op", op, "err", err)
		return nil, err
	}
	overlay.Commit()

	if h.emitter != nil && len(events) > 0 {
		if err := h.emitter.Emit(ctx, events); err != nil {
			// The call is already committed; delivery is transport.
			h.logger.Warn("event delivery failed", "op", op, "err", err)
			return events, err
		}
	}

	h.logger.Debug("call committed", "op", op, "events", len(events))
	return events, nil
}

// Mint creates tokens at an account. Owner only.
func (h *Host) Mint(ctx context.Context, caller, to ledger.Account, amount *uint256.Int) ([]ledger.Event, error) {
	return h.Call(ctx, "mint", func(l *ledger.Ledger) ([]ledger.Event, error) {
		ev, err := l.Mint(caller, to, amount)
		if err != nil {
			return nil, err
		}
		return []ledger.Event{ev}, nil
	})
}

// Burn destroys tokens from the caller's balance.
func (h *Host) Burn(ctx context.Context, caller ledger.Account, amount *uint256.Int) ([]ledger.Event, error) {
	return h.Call(ctx, "burn", func(l *ledger.Ledger) ([]ledger.Event, error) {
		ev, err := l.Burn(caller, amount)
		if err != nil {
			return nil, err
		}
		return []ledger.Event{ev}, nil
	})
}

// Transfer moves value from the caller to another account.
func (h *Host) Transfer(ctx context.Context, caller, to ledger.Account, amount *uint256.Int) ([]ledger.Event, error) {
	return h.Call(ctx, "transfer", func(l *ledger.Ledger) ([]ledger.Event, error) {
		ev, err := l.Transfer(caller, to, amount)
		if err != nil {
			return nil, err
		}
		return []ledger.Event{ev}, nil
	})
}

// Approve sets the caller's allowance for a spender.
func (h *Host) Approve(ctx context.Context, caller, spender ledger.Account, amount *uint256.Int) ([]ledger.Event, error) {
	return h.Call(ctx, "approve", func(l *ledger.Ledger) ([]ledger.Event, error) {
		ev, err := l.Approve(caller, spender, amount)
		if err != nil {
			return nil, err
		}
		return []ledger.Event{ev}, nil
	})
}

// TransferFrom spends the caller's allowance to move value between accounts.
func (h *Host) TransferFrom(ctx context.Context, caller, from, to ledger.Account, amount *uint256.Int) ([]ledger.Event, error) {
	return h.Call(ctx, "transfer_from", func(l *ledger.Ledger) ([]ledger.Event, error) {
		ev, err := l.TransferFrom(caller, from, to, amount)
		if err != nil {
			return nil, err
		}
		return []ledger.Event{ev}, nil
	})
}

// BatchTransfer moves value from the caller to each recipient in order.
// A failure anywhere discards the whole batch.
func (h *Host) BatchTransfer(ctx context.Context, caller ledger.Account, recipients []ledger.Account, amounts []*uint256.Int) ([]ledger.Event, error) {
	return h.Call(ctx, "batch_transfer", func(l *ledger.Ledger) ([]ledger.Event, error) {
		evs, err := l.BatchTransfer(caller, recipients, amounts)
		if err != nil {
			return nil, err
		}
		events := make([]ledger.Event, len(evs))
		for i, ev := range evs {
			events[i] = ev
		}
		return events, nil
	})
}

// Pause sets the pause flag. Owner only.
func (h *Host) Pause(ctx context.Context, caller ledger.Account) ([]ledger.Event, error) {
	return h.Call(ctx, "pause", func(l *ledger.Ledger) ([]ledger.Event, error) {
		ev, err := l.Pause(caller)
		if err != nil {
			return nil, err
		}
		return []ledger.Event{ev}, nil
	})
}

// Unpause clears the pause flag. Owner only.
func (h *Host) Unpause(ctx context.Context, caller ledger.Account) ([]ledger.Event, error) {
	return h.Call(ctx, "unpause", func(l *ledger.Ledger) ([]ledger.Event, error) {
		ev, err := l.Unpause(caller)
		if err != nil {
			return nil, err
		}
		return []ledger.Event{ev}, nil
	})
}

// SetBlacklist writes a blacklist entry. Owner only.
func (h *Host) SetBlacklist(ctx context.Context, caller, account ledger.Account, blacklisted bool) ([]ledger.Event, error) {
	return h.Call(ctx, "set_blacklist", func(l *ledger.Ledger) ([]ledger.Event, error) {
		ev, err := l.SetBlacklist(caller, account, blacklisted)
		if err != nil {
			return nil, err
		}
		return []ledger.Event{ev}, nil
	})
}

// BalanceOf returns the balance of an account.
func (h *Host) BalanceOf(account ledger.Account) *uint256.Int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.base.Balance(account)
}

// Allowance returns the amount owner has approved spender to move.
func (h *Host) Allowance(owner, spender ledger.Account) *uint256.Int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.base.Allowance(owner, spender)
}

// TotalSupply returns the supply counter.
func (h *Host) TotalSupply() *uint256.Int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.base.TotalSupply()
}

// Owner returns the account that created the ledger.
func (h *Host) Owner() ledger.Account {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.base.Owner()
}

// IsPaused returns the pause flag.
func (h *Host) IsPaused() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.base.Paused()
}

// IsBlacklisted returns the blacklist flag for an account.
func (h *Host) IsBlacklisted(account ledger.Account) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.base.Blacklisted(account)
}
