// pkg/model/shapes.go
package model

// BoundsCube builds the arena boundary as a unit wireframe cube with
// line topology; the renderer scales it to the arena size. Generated
// geometry goes through Pack like any file-backed model.
func BoundsCube(name string) *Model {
	corners := [8][3]float32{
		{-1, -1, -1},
		{1, -1, -1},
		{1, 1, -1},
		{-1, 1, -1},
		{-1, -1, 1},
		{1, -1, 1},
		{1, 1, 1},
		{-1, 1, 1},
	}
	// 1/sqrt(3), the outward corner normal component.
	const n = 0.5773503

	vertices := make([]float32, 0, len(corners)*FloatsPerVertex)
	for _, c := range corners {
		vertices = append(vertices,
			c[0]*n, c[1]*n, c[2]*n,
			c[0], c[1], c[2])
	}

	edges := [][2]uint32{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	indices := make([]uint32, 0, len(edges)*2)
	for _, e := range edges {
		indices = append(indices, e[0], e[1])
	}

	return &Model{
		Name:        name,
		Topology:    Lines,
		IndexCount:  len(indices),
		VertexCount: len(vertices),
		Indices:     indices,
		Vertices:    vertices,
	}
}
