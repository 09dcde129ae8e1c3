package credits

import (
	"context"
	"sync"
)

// Snapshot is a consistent read of the ledger.
type Snapshot struct {
	Balance       int64  `json:"balance"`
	Version       uint64 `json:"version"`
	Authoritative bool   `json:"authoritative"`
}

// Ledger caches the visible balance of one session.
// Debit and Credit are optimistic; Refresh overwrites the cache with the backend's value.
type Ledger struct {
	mu            sync.Mutex
	src           BalanceRepository
	balance       int64
	version       uint64
	authoritative bool
}

func NewLedger(src BalanceRepository) *Ledger {
	return &Ledger{src: src}
}

// Refresh loads the authoritative balance. On error the cache is left untouched.
func (l *Ledger) Refresh(ctx context.Context) (int64, error) {
	total, err := l.src.Balance(ctx)
	if err != nil {
		return 0, err
	}
	l.Set(total)
	return total, nil
}

// Set overwrites the cache with an authoritative value.
func (l *Ledger) Set(total int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance = total
	l.version++
	l.authoritative = true
}

func (l *Ledger) Balance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *Ledger) CanAfford(cost int64) bool {
	return CanAfford(l.Balance(), cost)
}

func (l *Ledger) Debit(amount int64) {
	l.Atomic(func(tx *Tx) { tx.Debit(amount) })
}

func (l *Ledger) Credit(amount int64) {
	l.Atomic(func(tx *Tx) { tx.Credit(amount) })
}

// Atomic runs fn with the ledger locked so that a balance change and the
// caller's own state change are observed together. fn must not call back
// into the Ledger outside tx.
func (l *Ledger) Atomic(fn func(tx *Tx)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(&Tx{l: l})
}

func (l *Ledger) snapshot() Snapshot {
	return Snapshot{Balance: l.balance, Version: l.version, Authoritative: l.authoritative}
}

// Tx is the ledger seen from inside Atomic.
type Tx struct {
	l *Ledger
}

func (tx *Tx) Balance() int64 { return tx.l.balance }

func (tx *Tx) Snapshot() Snapshot { return tx.l.snapshot() }

func (tx *Tx) CanAfford(cost int64) bool { return CanAfford(tx.l.balance, cost) }

func (tx *Tx) Debit(amount int64) {
	if amount <= 0 {
		return
	}
	tx.l.balance -= amount
	tx.l.version++
	tx.l.authoritative = false
}

func (tx *Tx) Credit(amount int64) {
	if amount <= 0 {
		return
	}
	tx.l.balance += amount
	tx.l.version++
	tx.l.authoritative = false
}
