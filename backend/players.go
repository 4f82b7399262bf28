package main

// Player picks moves for one side of a session. Game.Tick asks the side on
// move and applies whatever it returns; NoMove means "not yet".
type Player interface {
	Type() PlayerType
	ChooseMove(state GameState, rules Rules) Move
}

// HumanPlayer holds at most one clicked cell until the next tick. A newer
// click replaces an older one.
type HumanPlayer struct {
	queued *Move
}

func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{}
}

func (h *HumanPlayer) Type() PlayerType {
	return PlayerHuman
}

func (h *HumanPlayer) Queue(row, col int) {
	h.queued = &Move{Row: row, Col: col}
}

func (h *HumanPlayer) ChooseMove(state GameState, _ Rules) Move {
	if h.queued == nil {
		return NoMove(state.ToMove)
	}
	move := NewMove(h.queued.Row, h.queued.Col, state.ToMove)
	h.queued = nil
	return move
}
