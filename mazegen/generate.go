package mazegen

import "math/rand"

// Generate produces a random perfect maze using Wilson's algorithm: a
// loop-erased random walk. Starting from one visited node, it walks
// randomly from an unvisited node until hitting a visited one, erasing
// any loop the walk forms along the way, then carves the walked path
// and repeats until every node has been visited.
func Generate(rows, cols int, rng *rand.Rand) *Maze {
	m := New(rows, cols)

	first := m.RandomNode(rng)
	unvisited := make(map[Node]bool, m.Len()-1)
	for n := Node(0); n < Node(m.Len()); n++ {
		if n != first {
			unvisited[n] = true
		}
	}

	// order keeps unvisited-node selection deterministic for a given rng.
	order := make([]Node, 0, len(unvisited))
	for n := Node(0); n < Node(m.Len()); n++ {
		if unvisited[n] {
			order = append(order, n)
		}
	}

	for len(unvisited) > 0 {
		// Pick any unvisited node as the walk start.
		var cur Node
		for {
			cur = order[rng.Intn(len(order))]
			if unvisited[cur] {
				break
			}
		}

		path := []Node{cur}
		for unvisited[cur] {
			neighbors := m.Neighbors(cur)
			cur = neighbors[rng.Intn(len(neighbors))]

			// Erase the loop if the walk intersected itself.
			looped := false
			for i, n := range path {
				if n == cur {
					path = path[:i+1]
					looped = true
					break
				}
			}
			if !looped {
				path = append(path, cur)
			}
		}

		for i := 0; i+1 < len(path); i++ {
			m.Link(path[i], path[i+1])
			delete(unvisited, path[i])
		}
	}

	return m
}
