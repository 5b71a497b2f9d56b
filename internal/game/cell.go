package game

import "strconv"

// CellValue is what a cell holds underneath: Mine, or the number of
// mine-holding neighbors (0-8) computed once at placement time.
type CellValue int8

const Mine CellValue = -1

// Cell is a single board square. Revealed and Flagged are mutually
// exclusive: the mutation operations on [GameSession] refuse to flag a
// revealed cell and to reveal a flagged one.
type Cell struct {
	Value    CellValue
	Revealed bool
	Flagged  bool
}

// String renders the cell as the player would see it.
func (c Cell) String() string {
	switch {
	case c.Flagged:
		return "*"
	case !c.Revealed:
		return " "
	case c.Value == Mine:
		return "!"
	case c.Value == 0:
		return "."
	default:
		return strconv.Itoa(int(c.Value))
	}
}
