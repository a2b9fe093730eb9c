package viewer

import (
	"fmt"

	"github.com/Faultbox/bloom/internal/flower"
)

// Title formats the live parameters for the window title bar.
func Title(p flower.ShapeParameters, fps int) string {
	return fmt.Sprintf("bloom | petals %d  size %.2f  elong %.2f  comp %.2f  twist %.2f  noise %.2f @ %.2f  %s | %d fps",
		p.PetalCount, p.PetalSize, p.Elongation, p.Compression, p.Twist,
		p.NoiseScale, p.NoiseSpeed, p.Color.Hex(), fps)
}
