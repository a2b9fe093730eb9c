// Package debug provides viewer debugging aids: bounds wireframes and
// screenshots.
package debug

// BoxVertexCount is the number of vertices in a box wireframe (12 edges × 2).
const BoxVertexCount = 24

// DefaultBoxPadding expands the flower bounds so the box does not clip petals.
const DefaultBoxPadding = 0.05

// BoxWireframe returns line-list vertices [x, y, z, ...] outlining the box
// from lo to hi, grown by padding on every side. Inverted axes are swapped.
func BoxWireframe(lo, hi [3]float32, padding float32) []float32 {
	for i := range lo {
		if lo[i] > hi[i] {
			lo[i], hi[i] = hi[i], lo[i]
		}
		lo[i] -= padding
		hi[i] += padding
	}
	minX, minY, minZ := lo[0], lo[1], lo[2]
	maxX, maxY, maxZ := hi[0], hi[1], hi[2]

	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}
