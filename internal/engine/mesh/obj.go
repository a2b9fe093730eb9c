package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Faultbox/bloom/pkg/math"
)

// Object is a named mesh placed in world space for export.
type Object struct {
	Name      string
	Mesh      *Mesh
	Transform math.Mat4
}

// WriteOBJ writes objects as a single Wavefront OBJ stream. Positions are
// transformed to world space; normals are rotated with the transform and
// renormalized. Face indices are 1-based and offset per object.
func WriteOBJ(w io.Writer, objects []Object) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# bloom flower export: %d objects\n", len(objects))

	offset := 1
	for _, obj := range objects {
		m := obj.Mesh
		if m == nil {
			continue
		}
		if len(m.Normals) != len(m.Positions) {
			return fmt.Errorf("object %q: %d normals for %d positions", obj.Name, len(m.Normals), len(m.Positions))
		}

		fmt.Fprintf(bw, "o %s\n", obj.Name)
		for _, p := range m.Positions {
			wp := obj.Transform.TransformPoint(p)
			fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", wp[0], wp[1], wp[2])
		}
		for _, n := range m.Normals {
			wn := normalize(obj.Transform.TransformDirection(n))
			fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", wn[0], wn[1], wn[2])
		}
		for t := 0; t+2 < len(m.Indices); t += 3 {
			a := int(m.Indices[t]) + offset
			b := int(m.Indices[t+1]) + offset
			c := int(m.Indices[t+2]) + offset
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		}
		offset += len(m.Positions)
	}

	return bw.Flush()
}

// SaveOBJ writes objects to path, creating parent directories as needed.
func SaveOBJ(path string, objects []Object) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(f, objects); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
