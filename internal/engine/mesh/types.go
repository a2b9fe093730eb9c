// Package mesh provides fixed-topology triangle meshes: generation of the
// petal base surface, normal recomputation after deformation, bounds and
// Wavefront OBJ export.
package mesh

// Mesh is an indexed triangle mesh with per-vertex normals.
// Positions and Normals always have the same length.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Positions: make([][3]float32, len(m.Positions)),
		Normals:   make([][3]float32, len(m.Normals)),
		Indices:   make([]uint32, len(m.Indices)),
	}
	copy(c.Positions, m.Positions)
	copy(c.Normals, m.Normals)
	copy(c.Indices, m.Indices)
	return c
}

// NewLike allocates a mesh with the same vertex count as m that shares
// m's index buffer. Callers must treat the shared indices as read-only.
func NewLike(m *Mesh) *Mesh {
	return &Mesh{
		Positions: make([][3]float32, len(m.Positions)),
		Normals:   make([][3]float32, len(m.Normals)),
		Indices:   m.Indices,
	}
}

// Bounds computes the bounding box of the mesh positions.
// An empty mesh yields a zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		updateBounds(&b, p)
	}
	return b
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Center returns the center of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Union returns the smallest box containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	updateBounds(&b, other.Min)
	updateBounds(&b, other.Max)
	return b
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
