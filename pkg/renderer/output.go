package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// toneMap scales by exposure, clamps to [0, 1] and applies gamma, returning a byte
func toneMap(value, exposure, gamma float64) uint8 {
	v := math.Max(0, math.Min(1, value*exposure))
	return uint8(math.Pow(v, 1.0/gamma)*255.0 + 0.5)
}

// ToImage converts linear radiance pixels to an 8-bit image
func ToImage(pixels []core.Vec3, width, height int, exposure, gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			p := pixels[j*width+i]
			img.SetRGBA(i, j, color.RGBA{
				R: toneMap(p.X, exposure, gamma),
				G: toneMap(p.Y, exposure, gamma),
				B: toneMap(p.Z, exposure, gamma),
				A: 255,
			})
		}
	}
	return img
}

// WritePPM writes an image as a plain-text P3 pixmap
func WritePPM(w io.Writer, img *image.RGBA) error {
	bw := bufio.NewWriter(w)
	bounds := img.Bounds()
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			fmt.Fprintf(bw, "%d %d %d ", c.R, c.G, c.B)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// SaveImage writes img to path, as PPM for a .ppm extension and PNG otherwise.
// Missing parent directories are created.
func SaveImage(img *image.RGBA, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".ppm") {
		err = WritePPM(file, img)
	} else {
		err = png.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}
