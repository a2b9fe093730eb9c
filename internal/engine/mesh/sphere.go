package mesh

import "github.com/chewxy/math32"

// Default sphere resolution for petal base meshes.
const (
	DefaultWidthSegments  = 32
	DefaultHeightSegments = 32
)

// Minimum resolution that still yields a closed surface.
const (
	minWidthSegments  = 3
	minHeightSegments = 2
)

// BuildSphere generates a UV sphere centered at the origin with its poles on
// the Y axis. Rows run from the top pole (y = radius) to the bottom pole and
// each row holds widthSegs+1 vertices, the last one duplicating the first at
// the seam. Resolutions below the minimum are raised to it.
//
// The vertex order and index buffer depend only on the segment counts, so
// two spheres of equal resolution share the same topology.
func BuildSphere(radius float32, widthSegs, heightSegs int) *Mesh {
	widthSegs = max(widthSegs, minWidthSegments)
	heightSegs = max(heightSegs, minHeightSegments)

	rowLen := widthSegs + 1
	n := rowLen * (heightSegs + 1)
	m := &Mesh{
		Positions: make([][3]float32, 0, n),
		Normals:   make([][3]float32, 0, n),
		Indices:   make([]uint32, 0, widthSegs*heightSegs*6),
	}

	for iy := 0; iy <= heightSegs; iy++ {
		v := float32(iy) / float32(heightSegs)
		theta := v * math32.Pi
		sinTheta, cosTheta := math32.Sin(theta), math32.Cos(theta)

		for ix := 0; ix <= widthSegs; ix++ {
			u := float32(ix) / float32(widthSegs)
			phi := u * 2 * math32.Pi

			dir := [3]float32{
				-math32.Cos(phi) * sinTheta,
				cosTheta,
				math32.Sin(phi) * sinTheta,
			}
			m.Positions = append(m.Positions, [3]float32{dir[0] * radius, dir[1] * radius, dir[2] * radius})
			m.Normals = append(m.Normals, dir)
		}
	}

	// The pole rows collapse to a point, so each contributes one triangle per quad.
	for iy := 0; iy < heightSegs; iy++ {
		for ix := 0; ix < widthSegs; ix++ {
			a := uint32(iy*rowLen + ix + 1)
			b := uint32(iy*rowLen + ix)
			c := uint32((iy+1)*rowLen + ix)
			d := uint32((iy+1)*rowLen + ix + 1)

			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != heightSegs-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}

	return m
}
