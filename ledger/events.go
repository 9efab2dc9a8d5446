package ledger

import "github.com/holiman/uint256"

// Event describes a successful state mutation. Operations return event
// values rather than delivering them; handing events to subscribers is the
// host's responsibility.
type Event interface {
	// Type is the event type name.
	Type() string

	// Topics returns the indexed fields for external indexing.
	Topics() []string
}

// TransferEvent records value moved between two accounts.
type TransferEvent struct {
	From   Account      `json:"from"`
	To     Account      `json:"to"`
	Amount *uint256.Int `json:"amount"`
}

func (e TransferEvent) Type() string     { return "Transfer" }
func (e TransferEvent) Topics() []string { return []string{string(e.From), string(e.To)} }

// MintEvent records supply created at an account.
type MintEvent struct {
	To     Account      `json:"to"`
	Amount *uint256.Int `json:"amount"`
}

func (e MintEvent) Type() string     { return "Mint" }
func (e MintEvent) Topics() []string { return []string{string(e.To)} }

// BurnEvent records supply destroyed from an account.
type BurnEvent struct {
	From   Account      `json:"from"`
	Amount *uint256.Int `json:"amount"`
}

func (e BurnEvent) Type() string     { return "Burn" }
func (e BurnEvent) Topics() []string { return []string{string(e.From)} }

// ApprovalEvent records a delegated spending limit being set.
type ApprovalEvent struct {
	Owner   Account      `json:"owner"`
	Spender Account      `json:"spender"`
	Amount  *uint256.Int `json:"amount"`
}

func (e ApprovalEvent) Type() string { return "Approval" }
func (e ApprovalEvent) Topics() []string {
	return []string{string(e.Owner), string(e.Spender)}
}

// PausedEvent records the pause flag being toggled.
type PausedEvent struct {
	Paused bool `json:"paused"`
}

func (e PausedEvent) Type() string     { return "Paused" }
func (e PausedEvent) Topics() []string { return nil }

// BlacklistUpdatedEvent records a blacklist entry being written.
type BlacklistUpdatedEvent struct {
	Account     Account `json:"account"`
	Blacklisted bool    `json:"blacklisted"`
}

func (e BlacklistUpdatedEvent) Type() string     { return "BlacklistUpdated" }
func (e BlacklistUpdatedEvent) Topics() []string { return []string{string(e.Account)} }
