package blackjack

import "errors"

var (
	ErrRoundNotActive      = errors.New("round not active")
	ErrRoundInProgress     = errors.New("round already in progress")
	ErrInvalidBet          = errors.New("bet must be > 0")
	ErrInsufficientBalance = errors.New("bet exceeds balance")
	ErrNoDiscardToken      = errors.New("no discard token left")
	ErrInvalidSelection    = errors.New("exactly one card must be selected")
	ErrSupplyExhausted     = errors.New("card supply exhausted")
)
