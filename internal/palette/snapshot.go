package palette

import (
	"github.com/jmylchreest/huetune/internal/colour"
)

// Slot is one semantic background colour.
type Slot struct {
	Role  Role         `json:"role"`
	Color colour.Color `json:"color"`
}

// Snapshot is a point-in-time copy of a palette.
type Snapshot struct {
	Backgrounds []Slot         `json:"backgrounds"`
	Active      []Role         `json:"active"`
	Modifiable  []Role         `json:"modifiable,omitempty"`
	Foregrounds []colour.Color `json:"foregrounds"`
}

// Background returns the colour of role r and whether the snapshot has it.
func (s Snapshot) Background(r Role) (colour.Color, bool) {
	for _, slot := range s.Backgrounds {
		if slot.Role == r {
			return slot.Color, true
		}
	}
	return colour.Color{}, false
}

// ActiveBackgrounds returns the active background colours in Active order.
func (s Snapshot) ActiveBackgrounds() []colour.Color {
	out := make([]colour.Color, 0, len(s.Active))
	for _, r := range s.Active {
		if c, ok := s.Background(r); ok {
			out = append(out, c)
		}
	}
	return out
}

// Colors returns the active backgrounds followed by the foregrounds.
func (s Snapshot) Colors() []colour.Color {
	return append(s.ActiveBackgrounds(), s.Foregrounds...)
}
