// Command genicon renders the ATC transcriber app icon (radar waves plus a
// radio headset) for the Android and iOS asset catalogs. Purely deterministic
// 2-D drawing; the only failure modes are file I/O.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
)

var (
	background = color.RGBA{R: 26, G: 35, B: 126, A: 255} // aviation dark blue
	cyan       = color.RGBA{R: 0, G: 188, B: 212, A: 255}
	white      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

var androidSizes = map[string]int{
	"mipmap-mdpi":    48,
	"mipmap-hdpi":    72,
	"mipmap-xhdpi":   96,
	"mipmap-xxhdpi":  144,
	"mipmap-xxxhdpi": 192,
}

var iosSizes = []int{40, 58, 60, 80, 87, 120, 180, 1024}

func main() {
	outDir := flag.String("out", "assets/icons", "Output directory for the generated icon sets")
	flag.Parse()

	for dir, size := range androidSizes {
		path := filepath.Join(*outDir, "android", dir, "ic_launcher.png")
		if err := writePNG(path, renderIcon(size, 1.0, true)); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	// Adaptive icons keep the artwork inside the 66% safe zone on a
	// transparent layer.
	foreground := filepath.Join(*outDir, "android", "mipmap-anydpi", "ic_launcher_foreground.png")
	if err := writePNG(foreground, renderIcon(432, 0.66, false)); err != nil {
		log.Fatalf("Failed to write %s: %v", foreground, err)
	}

	for _, size := range iosSizes {
		path := filepath.Join(*outDir, "ios", fmt.Sprintf("AppIcon-%d.png", size))
		if err := writePNG(path, renderIcon(size, 1.0, true)); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
	}

	log.Printf("Icon sets written to %s", *outDir)
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// renderIcon paints the icon at the given raster size. scale shrinks the
// artwork around the center (adaptive-icon safe zone); opaque selects the
// solid background versus a transparent layer.
func renderIcon(size int, scale float64, opaque bool) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size) * scale
	cx := float64(size) / 2
	cy := float64(size) / 2

	stroke := math.Max(2, s/48)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5
			var c color.RGBA
			ok := true
			switch {
			case micHead(px, py, cx, cy, s):
				c = cyan
			case headset(px, py, cx, cy, s, stroke):
				c = white
			case radioWave(px, py, cx, cy, s, stroke, 0.25):
				c = cyan
			case radioWave(px, py, cx, cy, s, stroke, 0.38):
				c = blend(cyan, background, 180)
			case radioWave(px, py, cx, cy, s, stroke, 0.51):
				c = blend(cyan, background, 100)
			default:
				ok = false
			}
			if !ok {
				if opaque {
					c = background
				} else {
					c = color.RGBA{}
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// blend composites fg with the given alpha over bg.
func blend(fg, bg color.RGBA, alpha uint8) color.RGBA {
	a := float64(alpha) / 255
	mix := func(f, b uint8) uint8 {
		return uint8(float64(f)*a + float64(b)*(1-a))
	}
	return color.RGBA{R: mix(fg.R, bg.R), G: mix(fg.G, bg.G), B: mix(fg.B, bg.B), A: 255}
}

// radioWave tests membership in one transmission arc: a ring segment in the
// -60..60 degree sector to the right of center.
func radioWave(px, py, cx, cy, s, stroke, radiusMult float64) bool {
	dx := px - cx
	dy := py - cy
	dist := math.Hypot(dx, dy)
	radius := s * radiusMult
	if math.Abs(dist-radius) > stroke/2 {
		return false
	}
	angle := math.Atan2(dy, dx) * 180 / math.Pi
	return angle >= -60 && angle <= 60
}

func headset(px, py, cx, cy, s, stroke float64) bool {
	// Headband: arc over the top of the head.
	bandRadius := s * 0.28
	bandCY := cy - s*0.15
	dx := px - cx
	dy := py - bandCY
	dist := math.Hypot(dx, dy)
	if math.Abs(dist-bandRadius) <= stroke {
		angle := math.Atan2(dy, dx) * 180 / math.Pi
		if angle >= -160 && angle <= -20 {
			return true
		}
	}

	// Ear cups: rounded rectangles at both band ends.
	earW := s * 0.15
	earH := s * 0.20
	corner := s / 20
	leftX := cx - bandRadius + s*0.02
	rightX := cx + bandRadius - earW - s*0.02
	earY := cy - s*0.05
	if roundedRect(px, py, leftX, earY, earW, earH, corner) {
		return true
	}
	if roundedRect(px, py, rightX, earY, earW, earH, corner) {
		return true
	}

	// Microphone boom from the left cup toward the mic head.
	boomX0 := leftX + earW/2
	boomY0 := earY + earH - s*0.02
	boomX1 := cx - s*0.05
	boomY1 := cy + s*0.25
	return segmentDistance(px, py, boomX0, boomY0, boomX1, boomY1) <= stroke/2
}

func micHead(px, py, cx, cy, s float64) bool {
	headX := cx - s*0.05
	headY := cy + s*0.25
	return math.Hypot(px-headX, py-headY) <= s*0.06
}

func roundedRect(px, py, x, y, w, h, r float64) bool {
	if px < x || px > x+w || py < y || py > y+h {
		return false
	}
	ix := clampF(px, x+r, x+w-r)
	iy := clampF(py, y+r, y+h-r)
	return math.Hypot(px-ix, py-iy) <= r
}

func segmentDistance(px, py, x0, y0, x1, y1 float64) float64 {
	dx := x1 - x0
	dy := y1 - y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x0, py-y0)
	}
	t := clampF(((px-x0)*dx+(py-y0)*dy)/lenSq, 0, 1)
	return math.Hypot(px-(x0+t*dx), py-(y0+t*dy))
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
