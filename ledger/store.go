package ledger

import "github.com/holiman/uint256"

// Account is an opaque identifier naming a ledger participant.
type Account string

// Store is pure state access for a single ledger instance: balances,
// allowances, the supply counter, and the compliance scalars. Absent keys
// read as zero/false. Validation is the caller's responsibility.
//
// A store is exclusively owned by one ledger instance and is never written
// except through ledger operations. Implementations need no locking of
// their own; the host serializes calls.
type Store interface {
	// Owner returns the account that created the ledger. Set once, never
	// changed.
	Owner() Account

	// Balance returns the balance of an account, zero if absent.
	Balance(account Account) *uint256.Int

	// SetBalance writes an account balance. Writing zero is a legal
	// balance, not a deletion.
	SetBalance(account Account, v *uint256.Int)

	// Allowance returns the amount owner has approved spender to move,
	// zero if absent.
	Allowance(owner, spender Account) *uint256.Int

	// SetAllowance writes an allowance entry.
	SetAllowance(owner, spender Account, v *uint256.Int)

	// TotalSupply returns the supply counter.
	TotalSupply() *uint256.Int

	// SetTotalSupply writes the supply counter.
	SetTotalSupply(v *uint256.Int)

	// Paused returns the pause flag.
	Paused() bool

	// SetPaused writes the pause flag.
	SetPaused(paused bool)

	// Blacklisted returns the blacklist flag for an account, false if
	// absent.
	Blacklisted(account Account) bool

	// SetBlacklisted writes a blacklist entry.
	SetBlacklisted(account Account, flag bool)
}

type allowanceKey struct {
	Owner   Account
	Spender Account
}

// MemStore is the in-memory Store. Values are copied on read and write so
// callers can never alias internal state.
type MemStore struct {
	owner       Account
	balances    map[Account]*uint256.Int
	allowances  map[allowanceKey]*uint256.Int
	totalSupply *uint256.Int
	paused      bool
	blacklist   map[Account]bool
}

// NewMemStore creates an empty store owned by the creator account:
// supply zero, all maps empty, unpaused.
func NewMemStore(creator Account) *MemStore {
	return &MemStore{
		owner:       creator,
		balances:    make(map[Account]*uint256.Int),
		allowances:  make(map[allowanceKey]*uint256.Int),
		totalSupply: new(uint256.Int),
		blacklist:   make(map[Account]bool),
	}
}

// Owner returns the creator account.
func (s *MemStore) Owner() Account { return s.owner }

// Balance returns a copy of the account balance, zero if absent.
func (s *MemStore) Balance(account Account) *uint256.Int {
	if v, ok := s.balances[account]; ok {
		return v.Clone()
	}
	return new(uint256.Int)
}

// SetBalance stores a copy of the balance.
func (s *MemStore) SetBalance(account Account, v *uint256.Int) {
	s.balances[account] = v.Clone()
}

// Allowance returns a copy of the allowance entry, zero if absent.
func (s *MemStore) Allowance(owner, spender Account) *uint256.Int {
	if v, ok := s.allowances[allowanceKey{owner, spender}]; ok {
		return v.Clone()
	}
	return new(uint256.Int)
}

// SetAllowance stores a copy of the allowance entry.
func (s *MemStore) SetAllowance(owner, spender Account, v *uint256.Int) {
	s.allowances[allowanceKey{owner, spender}] = v.Clone()
}

// TotalSupply returns a copy of the supply counter.
func (s *MemStore) TotalSupply() *uint256.Int { return s.totalSupply.Clone() }

// SetTotalSupply stores a copy of the supply counter.
func (s *MemStore) SetTotalSupply(v *uint256.Int) { s.totalSupply = v.Clone() }

// Paused returns the pause flag.
func (s *MemStore) Paused() bool { return s.paused }

// SetPaused writes the pause flag.
func (s *MemStore) SetPaused(paused bool) { s.paused = paused }

// Blacklisted returns the blacklist flag, false if absent.
func (s *MemStore) Blacklisted(account Account) bool { return s.blacklist[account] }

// SetBlacklisted writes a blacklist entry.
func (s *MemStore) SetBlacklisted(account Account, flag bool) {
	s.blacklist[account] = flag
}

// SumBalances returns the sum of all stored balances. Used to check supply
// conservation against TotalSupply.
func (s *MemStore) SumBalances() *uint256.Int {
	sum := new(uint256.Int)
	for _, v := range s.balances {
		sum.Add(sum, v)
	}
	return sum
}

var _ Store = (*MemStore)(nil)
