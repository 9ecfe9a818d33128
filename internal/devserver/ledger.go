package devserver

import (
	"errors"
	"sync"
)

var (
	errUnknownPlayer = errors.New("unknown player")
	errInsufficient  = errors.New("insufficient balance")
)

// Account is one player's coin balance and history.
type Account struct {
	ID          string             `json:"id"`
	Username    string             `json:"username"`
	Coins       float64            `json:"coins"`
	GamesPlayed int                `json:"gamesPlayed"`
	TotalWon    float64            `json:"totalWon"`
	TotalSpent  float64            `json:"totalSpent"`
	Sessions    int                `json:"sessions"`
	ByGame      map[string]float64 `json:"byGame"`
}

// Ledger is the in-memory coin ledger.
type Ledger struct {
	mu            sync.Mutex
	accounts      map[string]*Account
	startingCoins float64
}

// NewLedger creates a ledger that opens accounts with startingCoins.
func NewLedger(startingCoins float64) *Ledger {
	return &Ledger{
		accounts:      make(map[string]*Account),
		startingCoins: startingCoins,
	}
}

// Open returns the account for id, creating it on first use.
func (l *Ledger) Open(id, username string) Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[id]
	if !ok {
		a = &Account{
			ID:       id,
			Username: username,
			Coins:    l.startingCoins,
			ByGame:   make(map[string]float64),
		}
		l.accounts[id] = a
	}
	return copyAccount(a)
}

// Get returns a copy of the account.
func (l *Ledger) Get(id string) (Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[id]
	if !ok {
		return Account{}, errUnknownPlayer
	}
	return copyAccount(a), nil
}

// SetCoins overwrites a balance.
func (l *Ledger) SetCoins(id string, coins float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[id]
	if !ok {
		return errUnknownPlayer
	}
	a.Coins = coins
	return nil
}

// Apply adds change to the balance and records the round. The balance may
// not go negative.
func (l *Ledger) Apply(id, gameType string, change float64) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[id]
	if !ok {
		return 0, errUnknownPlayer
	}
	if a.Coins+change < 0 {
		return a.Coins, errInsufficient
	}
	a.Coins += change
	a.GamesPlayed++
	if change >= 0 {
		a.TotalWon += change
	} else {
		a.TotalSpent -= change
	}
	a.ByGame[gameType] += change
	return a.Coins, nil
}

// EndSession counts a finished session.
func (l *Ledger) EndSession(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[id]
	if !ok {
		return errUnknownPlayer
	}
	a.Sessions++
	return nil
}

func copyAccount(a *Account) Account {
	out := *a
	out.ByGame = make(map[string]float64, len(a.ByGame))
	for k, v := range a.ByGame {
		out.ByGame[k] = v
	}
	return out
}
