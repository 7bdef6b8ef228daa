package app

// MinPlayersToStartGame is the minimum roster size for an early start,
// before the lobby fills up.
const MinPlayersToStartGame = 2
