package token

import "github.com/holiman/uint256"

// Tracker is the embedder-supplied ledger SEND and NBSEND consult. An AVM
// machine is constructed against a Tracker implementation; this package's
// InMemoryTracker is a usable default for tests and standalone runs, but
// production embedders are expected to supply their own (backed by whatever
// chain state actually holds balances).
type Tracker interface {
	// Spend attempts to debit amount of token. It reports whether the debit
	// succeeded; an insufficient balance must leave the ledger unchanged
	// (SEND retries the same opcode on insufficient balance, so a partial
	// debit would be double-charged on retry).
	Spend(token, amount uint256.Int) bool
	// Credit credits amount of token, e.g. when reversing a spend the
	// embedder later decides not to honor, or seeding test balances.
	Credit(token, amount uint256.Int)
}

// InMemoryTracker is a minimal map-backed Tracker: one non-negative balance
// per token, no persistence, no concurrency guarantees beyond what a single
// machine's single-threaded Run loop already assumes.
type InMemoryTracker struct {
	balances map[uint256.Int]uint256.Int
}

// NewInMemoryTracker returns an empty ledger.
func NewInMemoryTracker() *InMemoryTracker {
	return &InMemoryTracker{balances: make(map[uint256.Int]uint256.Int)}
}

// Spend debits amount of token if the balance covers it.
func (t *InMemoryTracker) Spend(token, amount uint256.Int) bool {
	have, ok := t.balances[token]
	if !ok || have.Lt(&amount) {
		return false
	}
	var next uint256.Int
	next.Sub(&have, &amount)
	t.balances[token] = next
	return true
}

// Credit adds amount to token's balance, creating the entry if absent.
func (t *InMemoryTracker) Credit(token, amount uint256.Int) {
	have := t.balances[token]
	var next uint256.Int
	next.Add(&have, &amount)
	t.balances[token] = next
}

// BalanceOf returns the current balance of token, zero if never credited.
func (t *InMemoryTracker) BalanceOf(token uint256.Int) uint256.Int {
	return t.balances[token]
}
