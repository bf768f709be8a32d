package graph

// Statistics is a structural snapshot of a dynamic weighted graph's
// topology, independent of any particular time or weight sample.
type Statistics struct {
	VertexCount         int
	EdgeCount           int
	Density             float64
	AverageOutDegree    float64
	MaxOutDegree        int
	MinOutDegree        int
	ConnectedComponents int
	IsConnected         bool
}

// CalculateStatistics computes a Statistics snapshot of g's topology. Edge
// direction is taken from DefineEdgeWeight calls; connectivity is
// evaluated on the undirected closure of those edges.
func CalculateStatistics(g *Dynamic) Statistics {
	vertices := g.Vertices()
	stats := Statistics{
		VertexCount: len(vertices),
		MinOutDegree: func() int {
			if len(vertices) == 0 {
				return 0
			}
			return 1<<31 - 1
		}(),
	}

	adjacency := make(map[string][]string, len(vertices))
	for _, v := range vertices {
		adjacency[v] = nil
	}

	totalOutDegree := 0
	for _, v := range vertices {
		neighbors := g.Neighbors(v)
		degree := len(neighbors)
		stats.EdgeCount += degree
		totalOutDegree += degree

		if degree > stats.MaxOutDegree {
			stats.MaxOutDegree = degree
		}
		if degree < stats.MinOutDegree {
			stats.MinOutDegree = degree
		}

		for _, n := range neighbors {
			adjacency[v] = append(adjacency[v], n)
			adjacency[n] = append(adjacency[n], v)
		}
	}

	if stats.MinOutDegree == 1<<31-1 {
		stats.MinOutDegree = 0
	}
	if len(vertices) > 0 {
		stats.AverageOutDegree = float64(totalOutDegree) / float64(len(vertices))
	}
	if len(vertices) > 1 {
		maxEdges := len(vertices) * (len(vertices) - 1)
		stats.Density = float64(stats.EdgeCount) / float64(maxEdges)
	}

	stats.ConnectedComponents = countComponents(vertices, adjacency)
	stats.IsConnected = stats.ConnectedComponents <= 1

	return stats
}

func countComponents(vertices []string, adjacency map[string][]string) int {
	visited := make(map[string]bool, len(vertices))
	components := 0

	for _, start := range vertices {
		if visited[start] {
			continue
		}
		components++

		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, v := range adjacency[u] {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}
	}

	return components
}
