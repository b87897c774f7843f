package core

import "errors"

// Precondition errors are checked before any mutation and surfaced
// verbatim to the caller. ErrPlayerNotFound is the only not-found error
// and maps to 404 at the API layer.
var (
	ErrInsufficientFunds = errors.New("Not enough coins")
	ErrCollectionFull    = errors.New("Collection full. Buy more slots in Shop (10,000).")
	ErrExpandFunds       = errors.New("Not enough coins. Need 10,000.")
	ErrNotEnoughRoster   = errors.New("Need 5 players in roster to enter the tournament.")
	ErrStillGrinding     = errors.New("Someone is still grinding. Wait until all grind sessions finish.")
	ErrTooTired          = errors.New("Too tired")
	ErrGrindingBusy      = errors.New("Grinding in progress. Cannot interrupt — wait until it finishes.")
	ErrSleepingBusy      = errors.New("Player is sleeping. Cannot interrupt — wait until they wake.")
	ErrAlreadySleeping   = errors.New("Already sleeping. Cannot interrupt — wait until they wake.")
	ErrAtTierCap         = errors.New("Already at max for this tier. No room to improve.")
	ErrRosterFull        = errors.New("Roster full (max 5)")
	ErrDuplicateRoster   = errors.New("That player is already in your roster (one copy per player).")
	ErrUnknownAction     = errors.New("Unknown action")
	ErrPlayerNotFound    = errors.New("Player not found")
)
