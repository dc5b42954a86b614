package contour

// State is the activation of a cell's corners: V0 = nw, V1 = ne, V2 = se,
// V3 = sw.
type State struct {
	V0, V1, V2, V3 bool
}

// Case returns 8·v0 + 4·v1 + 2·v2 + v3.
func (s State) Case() int {
	c := 0
	if s.V0 {
		c |= 8
	}
	if s.V1 {
		c |= 4
	}
	if s.V2 {
		c |= 2
	}
	if s.V3 {
		c |= 1
	}
	return c
}

// HasEdge reports whether the isoline passes through the cell, i.e. the
// corners are not all active or all inactive.
func (s State) HasEdge() bool {
	all := s.V0 && s.V1 && s.V2 && s.V3
	none := !(s.V0 || s.V1 || s.V2 || s.V3)
	return !all && !none
}

// next moves the right-hand corners into the left-hand slots for the
// neighbouring cell in the same row.
func (s State) next() State {
	return State{V0: s.V1, V3: s.V2}
}

// StateFromCase is the inverse of Case.
func StateFromCase(c int) State {
	return State{
		V0: c&8 != 0,
		V1: c&4 != 0,
		V2: c&2 != 0,
		V3: c&1 != 0,
	}
}

// Cell holds the lattice indices of one unit square.
type Cell struct {
	NW, NE, SE, SW int
}

// Edge is one side of a cell.
type Edge uint8

const (
	Top Edge = iota
	Bottom
	Left
	Right
)

func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// caseEdges lists, per case, the edges that receive a vertex in emission
// order. Consecutive pairs form segments.
var caseEdges = [16][]Edge{
	0:  nil,
	1:  {Left, Bottom},
	2:  {Right, Bottom},
	3:  {Left, Right},
	4:  {Top, Right},
	5:  {Left, Top, Bottom, Right},
	6:  {Top, Bottom},
	7:  {Left, Top},
	8:  {Top, Left},
	9:  {Top, Bottom},
	10: {Left, Bottom, Top, Right},
	11: {Top, Right},
	12: {Left, Right},
	13: {Right, Bottom},
	14: {Left, Bottom},
	15: nil,
}

// Edges returns the crossed edges for case c in emission order. It returns
// nil for cases outside [1,14].
func Edges(c int) []Edge {
	if c < 0 || c >= len(caseEdges) {
		return nil
	}
	return caseEdges[c]
}
