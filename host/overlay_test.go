package host_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/pflow-xyz/go-tokenledger/host"
	"github.com/pflow-xyz/go-tokenledger/ledger"
)

const (
	owner = ledger.Account("owner")
	alice = ledger.Account("alice")
	bob   = ledger.Account("bob")
)

func u(n uint64) *uint256.Int { return uint256.NewInt(n) }

func TestOverlayFallthrough(t *testing.T) {
	base := ledger.NewMemStore(owner)
	base.SetBalance(alice, u(100))
	base.SetAllowance(alice, bob, u(5))
	base.SetBlacklisted(bob, true)

	o := host.NewOverlay(base)

	if got := o.Balance(alice); !got.Eq(u(100)) {
		t.Errorf("balance fallthrough = %s, want 100", got.Dec())
	}
	if got := o.Allowance(alice, bob); !got.Eq(u(5)) {
		t.Errorf("allowance fallthrough = %s, want 5", got.Dec())
	}
	if !o.Blacklisted(bob) {
		t.Error("blacklist fallthrough should read true")
	}
	if got := o.Balance(bob); !got.IsZero() {
		t.Errorf("absent key through overlay = %s, want 0", got.Dec())
	}
	if o.Owner() != owner {
		t.Errorf("owner = %s, want %s", o.Owner(), owner)
	}
}

func TestOverlayBuffersWrites(t *testing.T) {
	base := ledger.NewMemStore(owner)
	base.SetBalance(alice, u(100))

	o := host.NewOverlay(base)
	o.SetBalance(alice, u(60))
	o.SetBalance(bob, u(40))
	o.SetPaused(true)

	// Overlay sees its own writes.
	if got := o.Balance(alice); !got.Eq(u(60)) {
		t.Errorf("overlay balance = %s, want 60", got.Dec())
	}
	if !o.Paused() {
		t.Error("overlay should read its own pause write")
	}

	// Base is untouched until commit.
	if got := base.Balance(alice); !got.Eq(u(100)) {
		t.Errorf("base balance = %s, want 100", got.Dec())
	}
	if got := base.Balance(bob); !got.IsZero() {
		t.Errorf("base balance = %s, want 0", got.Dec())
	}
	if base.Paused() {
		t.Error("base should not be paused before commit")
	}
}

func TestOverlayCommit(t *testing.T) {
	base := ledger.NewMemStore(owner)
	base.SetBalance(alice, u(100))

	o := host.NewOverlay(base)
	o.SetBalance(alice, u(60))
	o.SetBalance(bob, u(40))
	o.SetAllowance(alice, bob, u(7))
	o.SetTotalSupply(u(100))
	o.SetPaused(true)
	o.SetBlacklisted(bob, true)
	o.Commit()

	if got := base.Balance(alice); !got.Eq(u(60)) {
		t.Errorf("committed balance = %s, want 60", got.Dec())
	}
	if got := base.Balance(bob); !got.Eq(u(40)) {
		t.Errorf("committed balance = %s, want 40", got.Dec())
	}
	if got := base.Allowance(alice, bob); !got.Eq(u(7)) {
		t.Errorf("committed allowance = %s, want 7", got.Dec())
	}
	if got := base.TotalSupply(); !got.Eq(u(100)) {
		t.Errorf("committed supply = %s, want 100", got.Dec())
	}
	if !base.Paused() {
		t.Error("committed pause flag should be set")
	}
	if !base.Blacklisted(bob) {
		t.Error("committed blacklist entry should be set")
	}
}

func TestOverlayDiscard(t *testing.T) {
	base := ledger.NewMemStore(owner)
	base.SetBalance(alice, u(100))

	o := host.NewOverlay(base)
	o.SetBalance(alice, u(1))
	o.SetPaused(true)
	// Dropping the overlay without Commit discards everything.

	if got := base.Balance(alice); !got.Eq(u(100)) {
		t.Errorf("base balance = %s, want 100", got.Dec())
	}
	if base.Paused() {
		t.Error("base should not be paused")
	}
}

func TestOverlayClearFlagReachesBase(t *testing.T) {
	base := ledger.NewMemStore(owner)
	base.SetBlacklisted(alice, true)

	o := host.NewOverlay(base)
	o.SetBlacklisted(alice, false)
	if o.Blacklisted(alice) {
		t.Error("overlay should read its own false write, not fall through")
	}
	o.Commit()

	if base.Blacklisted(alice) {
		t.Error("committed false write should clear the base entry")
	}
}
