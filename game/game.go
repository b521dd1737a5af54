// Package game is the authoritative per-room model: players, turn order,
// deck state, pending decisions, and the action handlers that resolve each
// inbound player action into a deterministic state transition.
package game

// Board and room tuning. Positions run from StartPos (off-board) to
// BoardSize; a player at BoardSize has won.
const (
	BoardSize      = 50
	MaxPlayers     = 6
	StartPos       = 0
	CardSpaceCount = 25
	HandSize       = 3
)

// Token colors assigned round-robin in join order.
var colors = []string{"#ff8a00", "#6c5ce7", "#00b894", "#e84393", "#0984e3", "#d63031"}
