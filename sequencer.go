package canvas

import "sort"

// sequence produces a total order over the graph's nodes in which every
// producer precedes its consumers. Among nodes whose dependencies are all
// satisfied, the lexicographically smallest id goes first, so the order
// (and therefore slot assignment) is reproducible for a given graph.
func sequence(g *Graph) ([]*Node, error) {
	indegree := make(map[string]int, len(g.nodes))
	consumers := make(map[string][]string, len(g.nodes))

	for _, id := range g.order {
		node := g.nodes[id]
		indegree[id] = len(node.inputs)
		for _, producer := range node.inputs {
			consumers[producer] = append(consumers[producer], id)
		}
	}

	ready := make([]string, 0, len(g.nodes))
	for _, id := range g.order {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	ordered := make([]*Node, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		ordered = append(ordered, g.nodes[id])

		for _, consumer := range consumers[id] {
			indegree[consumer]--
			if indegree[consumer] == 0 {
				// Keep the ready set sorted as nodes become eligible.
				at := sort.SearchStrings(ready, consumer)
				ready = append(ready, "")
				copy(ready[at+1:], ready[at:])
				ready[at] = consumer
			}
		}
	}

	if len(ordered) != len(g.nodes) {
		remaining := make([]string, 0, len(g.nodes)-len(ordered))
		for _, id := range g.order {
			if indegree[id] > 0 {
				remaining = append(remaining, id)
			}
		}
		sort.Strings(remaining)
		return nil, &CycleError{Nodes: remaining}
	}

	return ordered, nil
}
