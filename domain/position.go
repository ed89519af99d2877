package domain

// Position is a kind of work offered or sought, picked from a drop-down
// on both submission forms.
type Position struct {
	ID   int64
	Name string
}

func (p Position) String() string {
	return p.Name
}

// DefaultPosition returns the only position when there is exactly one.
func DefaultPosition(positions []Position) (Position, bool) {
	if len(positions) == 1 {
		return positions[0], true
	}
	return Position{}, false
}
