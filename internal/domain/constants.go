package domain

const (
	// StartingMoney is the cash every player begins a session with.
	StartingMoney = 1500
	// MaxPlayers is the roster cap; the 4th join starts the game.
	MaxPlayers = 4
	// BoardSize is the number of spaces on the board; movement wraps.
	BoardSize = 40
	// DiceSides is the number of faces on each die.
	DiceSides = 6
)
