package host

import (
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-tokenledger/ledger"
)

type pairKey struct {
	Owner   ledger.Account
	Spender ledger.Account
}

// Overlay is a write-buffering ledger.Store over a base store. Reads fall
// through to the base for keys the overlay has not written, which preserves
// default-zero semantics. Writes stay in the overlay until Commit, so a
// failed call is discarded by dropping the overlay.
type Overlay struct {
	base       ledger.Store
	balances   map[ledger.Account]*uint256.Int
	allowances map[pairKey]*uint256.Int
	supply     *uint256.Int
	paused     *bool
	blacklist  map[ledger.Account]bool
}

// NewOverlay creates an empty overlay over a base store.
func NewOverlay(base ledger.Store) *Overlay {
	return &Overlay{
		base:       base,
		balances:   make(map[ledger.Account]*uint256.Int),
		allowances: make(map[pairKey]*uint256.Int),
		blacklist:  make(map[ledger.Account]bool),
	}
}

// Owner returns the base store's owner. Ownership never changes, so it is
// never buffered.
func (o *Overlay) Owner() ledger.Account { return o.base.Owner() }

// Balance reads a buffered balance, falling through to the base.
func (o *Overlay) Balance(account ledger.Account) *uint256.Int {
	if v, ok := o.balances[account]; ok {
		return v.Clone()
	}
	return o.base.Balance(account)
}

// SetBalance buffers a balance write.
func (o *Overlay) SetBalance(account ledger.Account, v *uint256.Int) {
	o.balances[account] = v.Clone()
}

// Allowance reads a buffered allowance, falling through to the base.
func (o *Overlay) Allowance(owner, spender ledger.Account) *uint256.Int {
	if v, ok := o.allowances[pairKey{owner, spender}]; ok {
		return v.Clone()
	}
	return o.base.Allowance(owner, spender)
}

// SetAllowance buffers an allowance write.
func (o *Overlay) SetAllowance(owner, spender ledger.Account, v *uint256.Int) {
	o.allowances[pairKey{owner, spender}] = v.Clone()
}

// TotalSupply reads the buffered supply, falling through to the base.
func (o *Overlay) TotalSupply() *uint256.Int {
	if o.supply != nil {
		return o.supply.Clone()
	}
	return o.base.TotalSupply()
}

// SetTotalSupply buffers a supply write.
func (o *Overlay) SetTotalSupply(v *uint256.Int) { o.supply = v.Clone() }

// Paused reads the buffered pause flag, falling through to the base.
func (o *Overlay) Paused() bool {
	if o.paused != nil {
		return *o.paused
	}
	return o.base.Paused()
}

// SetPaused buffers a pause flag write.
func (o *Overlay) SetPaused(paused bool) { o.paused = &paused }

// Blacklisted reads a buffered blacklist entry, falling through to the base.
func (o *Overlay) Blacklisted(account ledger.Account) bool {
	if v, ok := o.blacklist[account]; ok {
		return v
	}
	return o.base.Blacklisted(account)
}

// SetBlacklisted buffers a blacklist write.
func (o *Overlay) SetBlacklisted(account ledger.Account, flag bool) {
	o.blacklist[account] = flag
}

// Commit applies every buffered write to the base store and clears the
// overlay. Commit after a successful call is what makes the call's effects
// visible; an overlay that is never committed leaves the base untouched.
func (o *Overlay) Commit() {
	for account, v := range o.balances {
		o.base.SetBalance(account, v)
	}
	for key, v := range o.allowances {
		o.base.SetAllowance(key.Owner, key.Spender, v)
	}
	if o.supply != nil {
		o.base.SetTotalSupply(o.supply)
	}
	if o.paused != nil {
		o.base.SetPaused(*o.paused)
	}
	for account, flag := range o.blacklist {
		o.base.SetBlacklisted(account, flag)
	}

	o.balances = make(map[ledger.Account]*uint256.Int)
	o.allowances = make(map[pairKey]*uint256.Int)
	o.supply = nil
	o.paused = nil
	o.blacklist = make(map[ledger.Account]bool)
}

var _ ledger.Store = (*Overlay)(nil)
