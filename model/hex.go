package model

// Hex is an axial hex-grid coordinate. Distances and neighbor walks use the
// cube-coordinate identities, with the third axis derived as -Q-R.
type Hex struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// hexDirections are the six neighbor offsets in axial coordinates,
// clockwise starting east.
var hexDirections = [6]Hex{
	{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

// Add returns the component-wise sum of two coordinates.
func (h Hex) Add(o Hex) Hex {
	return Hex{h.Q + o.Q, h.R + o.R}
}

// Neighbors returns the six adjacent coordinates.
func (h Hex) Neighbors() [6]Hex {
	var out [6]Hex
	for i, d := range hexDirections {
		out[i] = h.Add(d)
	}
	return out
}

// DistanceTo returns the hex-grid distance between two coordinates.
func (h Hex) DistanceTo(o Hex) int {
	dq := h.Q - o.Q
	dr := h.R - o.R
	ds := -dq - dr
	return (abs(dq) + abs(dr) + abs(ds)) / 2
}

// IsAdjacentTo reports whether o is one of the six neighbors of h.
func (h Hex) IsAdjacentTo(o Hex) bool {
	return h.DistanceTo(o) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
