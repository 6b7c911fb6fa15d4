package mazegen

import (
	"fmt"
	"strings"
)

// Distances holds how far every reachable node of a maze is from a
// root node, following carved passages only.
type Distances struct {
	root Node
	dist map[Node]int
}

// Root returns the node the distances are measured from.
func (d *Distances) Root() Node { return d.root }

// Get returns the distance of the node from the root.
func (d *Distances) Get(n Node) (int, bool) {
	v, ok := d.dist[n]
	return v, ok
}

// Len returns the number of reachable nodes, root included.
func (d *Distances) Len() int { return len(d.dist) }

// Farthest returns the node with the greatest distance from the root.
func (d *Distances) Farthest() (Node, int) {
	far, max := d.root, 0
	for n, v := range d.dist {
		if v > max {
			far, max = n, v
		}
	}
	return far, max
}

// Distances computes the passage distance from root to every reachable
// node by breadth-first traversal of the links.
func (m *Maze) Distances(root Node) *Distances {
	d := &Distances{root: root, dist: map[Node]int{root: 0}}
	frontier := []Node{root}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, nb := range m.Links(cur) {
			if _, seen := d.dist[nb]; !seen {
				d.dist[nb] = d.dist[cur] + 1
				frontier = append(frontier, nb)
			}
		}
	}
	return d
}

// Overlay renders the maze with each cell's distance from the root
// printed in hexadecimal inside it. Useful for debugging and for the
// headless demo's output.
func Overlay(m *Maze, d *Distances) string {
	var b strings.Builder
	b.WriteString("+")
	b.WriteString(strings.Repeat("----+", m.cols))
	b.WriteString("\n")
	for row := 0; row < m.rows; row++ {
		top := "|"
		bottom := "+"
		for col := 0; col < m.cols; col++ {
			n := m.Index(col, row)
			dist, _ := d.Get(n)
			if m.HasLink(n, Right) {
				top += fmt.Sprintf("  %2x ", dist)
			} else {
				top += fmt.Sprintf("  %2x|", dist)
			}
			if m.HasLink(n, Down) {
				bottom += "    +"
			} else {
				bottom += "----+"
			}
		}
		b.WriteString(top + "\n")
		b.WriteString(bottom + "\n")
	}
	return b.String()
}
