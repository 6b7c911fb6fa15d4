// Package mazegen generates perfect mazes on a rectangular grid using
// Wilson's algorithm and computes distance maps over them.
package mazegen

import (
	"math/rand"
	"strings"
)

// Node identifies one cell of a maze by its index in row-major order.
type Node int

// Direction is one of the four grid directions.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists all four directions in clockwise order starting at Up.
var Directions = [4]Direction{Up, Right, Down, Left}

// Offset returns the (dx, dy) grid offset of the direction, with x
// growing rightward and y growing downward.
func (d Direction) Offset() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	default:
		return -1, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction { return (d + 2) % 4 }

// RotateCW returns the direction one quarter turn clockwise.
func (d Direction) RotateCW() Direction { return (d + 1) % 4 }

// RotateCCW returns the direction one quarter turn counterclockwise.
func (d Direction) RotateCCW() Direction { return (d + 3) % 4 }

// Maze is a rectangular grid of nodes with carved passages. A passage
// between two adjacent nodes is a symmetric link; nodes without a link
// between them are separated by a wall.
type Maze struct {
	rows, cols int
	links      []uint8 // per-node bitmask of linked directions
}

// New creates a maze with the given dimensions and no passages.
func New(rows, cols int) *Maze {
	return &Maze{rows: rows, cols: cols, links: make([]uint8, rows*cols)}
}

// Dimensions returns the number of rows and columns.
func (m *Maze) Dimensions() (rows, cols int) { return m.rows, m.cols }

// Len returns the number of nodes.
func (m *Maze) Len() int { return m.rows * m.cols }

// Index returns the node at (col, row).
func (m *Maze) Index(col, row int) Node { return Node(row*m.cols + col) }

// Pos returns the (col, row) position of a node.
func (m *Maze) Pos(n Node) (col, row int) { return int(n) % m.cols, int(n) / m.cols }

// Neighbor returns the adjacent node in the given direction, or false
// at the grid edge.
func (m *Maze) Neighbor(n Node, d Direction) (Node, bool) {
	col, row := m.Pos(n)
	dx, dy := d.Offset()
	col, row = col+dx, row+dy
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return 0, false
	}
	return m.Index(col, row), true
}

// Neighbors returns all adjacent nodes, linked or not.
func (m *Maze) Neighbors(n Node) []Node {
	out := make([]Node, 0, 4)
	for _, d := range Directions {
		if nb, ok := m.Neighbor(n, d); ok {
			out = append(out, nb)
		}
	}
	return out
}

// Link carves a bidirectional passage between two adjacent nodes.
func (m *Maze) Link(a, b Node) {
	for _, d := range Directions {
		if nb, ok := m.Neighbor(a, d); ok && nb == b {
			m.links[a] |= 1 << d
			m.links[b] |= 1 << d.Opposite()
			return
		}
	}
}

// HasLink reports whether the node has a passage in the direction.
func (m *Maze) HasLink(n Node, d Direction) bool {
	return m.links[n]&(1<<d) != 0
}

// Links returns the nodes reachable from n through carved passages.
func (m *Maze) Links(n Node) []Node {
	out := make([]Node, 0, 4)
	for _, d := range Directions {
		if m.HasLink(n, d) {
			if nb, ok := m.Neighbor(n, d); ok {
				out = append(out, nb)
			}
		}
	}
	return out
}

// EdgeNodes returns the nodes along the given side of the grid.
func (m *Maze) EdgeNodes(side Direction) []Node {
	var out []Node
	switch side {
	case Up:
		for col := 0; col < m.cols; col++ {
			out = append(out, m.Index(col, 0))
		}
	case Down:
		for col := 0; col < m.cols; col++ {
			out = append(out, m.Index(col, m.rows-1))
		}
	case Left:
		for row := 0; row < m.rows; row++ {
			out = append(out, m.Index(0, row))
		}
	case Right:
		for row := 0; row < m.rows; row++ {
			out = append(out, m.Index(m.cols-1, row))
		}
	}
	return out
}

// RandomNode returns a uniformly random node.
func (m *Maze) RandomNode(rng *rand.Rand) Node {
	return Node(rng.Intn(m.Len()))
}

// String renders the maze walls as ASCII.
func (m *Maze) String() string {
	var b strings.Builder
	b.WriteString("+")
	b.WriteString(strings.Repeat("---+", m.cols))
	b.WriteString("\n")
	for row := 0; row < m.rows; row++ {
		top := "|"
		bottom := "+"
		for col := 0; col < m.cols; col++ {
			n := m.Index(col, row)
			if m.HasLink(n, Right) {
				top += "    "
			} else {
				top += "   |"
			}
			if m.HasLink(n, Down) {
				bottom += "   +"
			} else {
				bottom += "---+"
			}
		}
		b.WriteString(top + "\n")
		b.WriteString(bottom + "\n")
	}
	return b.String()
}
