package domain

// Represents a single named location to be visited.
// Points are created by parsing one line of the input file and are never
// mutated afterwards. Once loaded, a point is identified by its position in
// the sequence: matrix indices correspond to sequence positions.
type Point struct {
	Name     string
	Location Coordinates
}

// Return the locations of the given points, in order.
func Locations(points []Point) []Coordinates {
	out := make([]Coordinates, 0, len(points))
	for _, p := range points {
		out = append(out, p.Location)
	}
	return out
}
