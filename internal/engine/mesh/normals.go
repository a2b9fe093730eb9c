package mesh

import "github.com/chewxy/math32"

// ComputeNormals writes area-weighted smooth normals for positions into
// normals, using the triangle list in indices. Each triangle adds its
// unnormalized face normal (twice its area) to its three corners; the sums
// are then normalized. Vertices whose sum vanishes (unreferenced or only
// touching degenerate triangles) get +Y.
//
// normals must have the same length as positions. Indices out of range are
// skipped.
func ComputeNormals(positions [][3]float32, indices []uint32, normals [][3]float32) {
	for i := range normals {
		normals[i] = [3]float32{}
	}

	n := uint32(len(positions))
	for t := 0; t+2 < len(indices); t += 3 {
		ia, ib, ic := indices[t], indices[t+1], indices[t+2]
		if ia >= n || ib >= n || ic >= n {
			continue
		}
		a, b, c := positions[ia], positions[ib], positions[ic]
		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		face := cross(e1, e2)

		for _, idx := range [3]uint32{ia, ib, ic} {
			normals[idx][0] += face[0]
			normals[idx][1] += face[1]
			normals[idx][2] += face[2]
		}
	}

	for i := range normals {
		normals[i] = normalize(normals[i])
	}
}

// RecomputeNormals refreshes m.Normals from its current positions.
func (m *Mesh) RecomputeNormals() {
	if len(m.Normals) != len(m.Positions) {
		m.Normals = make([][3]float32, len(m.Positions))
	}
	ComputeNormals(m.Positions, m.Indices, m.Normals)
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// normalize returns a unit vector in the same direction as v, or +Y when v
// is too short or not finite.
func normalize(v [3]float32) [3]float32 {
	length := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if !(length > 1e-12) || math32.IsInf(length, 0) {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / length, v[1] / length, v[2] / length}
}
