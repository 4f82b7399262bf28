package main

type Move struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Side Side `json:"side"`
}

func NewMove(row, col int, side Side) Move {
	return Move{Row: row, Col: col, Side: side}
}

// NoMove is returned when the board has no empty cell left.
func NoMove(side Side) Move {
	return Move{Row: -1, Col: -1, Side: side}
}

func (m Move) IsNone() bool {
	return m.Row < 0
}

func (m Move) IsValid(edgeSize int) bool {
	return m.Row >= 0 && m.Col >= 0 && m.Row < edgeSize && m.Col < edgeSize
}
