package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/posecam/internal/pose"
)

// CanvasSVG renders every set braille dot as an SVG circle.
func CanvasSVG(c *Canvas, scale float64, fill string) string {
	w, h := c.Dots()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, float64(w)*scale, float64(h)*scale, float64(w)*scale, float64(h)*scale, fill)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, scale*0.4)
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// WritePathSVG draws a top-down plan of the poses and the path through
// points: pose markers with their facing, and the path as a polyline.
func WritePathSVG(w io.Writer, poses []*pose.Pose, points []mgl64.Vec3, width, height int) error {
	all := make([]mgl64.Vec3, 0, len(poses)+len(points))
	for _, p := range poses {
		all = append(all, p.Position)
	}
	all = append(all, points...)
	plan := FitPlan(all, width, height)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, p := range poses {
		x, y := plan.Project(p.Position)
		dx, dy := plan.Heading(p.Orientation.Rotate(mgl64.Vec3{0, 0, 1}), 18)
		fmt.Fprintf(&sb, `<g stroke="%s" fill="%s"><circle cx="%d" cy="%d" r="4"/><line x1="%d" y1="%d" x2="%d" y2="%d" stroke-width="2"/><text x="%d" y="%d" font-family="monospace" font-size="11" stroke="none">%s</text></g>
`, p.Color, p.Color, x, y, x, y, x+dx, y+dy, x+6, y-6, p.Name)
	}

	if len(points) > 1 {
		sb.WriteString(`<path fill="none" stroke="#00ff88" stroke-width="1.5" d="`)
		for i, v := range points {
			x, y := plan.Project(v)
			if i == 0 {
				fmt.Fprintf(&sb, "M%d,%d", x, y)
			} else {
				fmt.Fprintf(&sb, " L%d,%d", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
