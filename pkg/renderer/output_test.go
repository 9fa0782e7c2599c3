package renderer

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-photon-mapper/pkg/core"
)

func TestToneMap(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		exposure float64
		gamma    float64
		expected uint8
	}{
		{"black", 0, 1, 2.2, 0},
		{"white", 1, 1, 2.2, 255},
		{"negative clamps", -1, 1, 2.2, 0},
		{"overbright clamps", 3, 1, 2.2, 255},
		{"linear half", 0.5, 1, 1, 128},
		{"exposure doubles", 0.25, 2, 1, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toneMap(tt.value, tt.exposure, tt.gamma); got != tt.expected {
				t.Errorf("toneMap(%g, %g, %g) = %d, expected %d", tt.value, tt.exposure, tt.gamma, got, tt.expected)
			}
		})
	}
}

func TestWritePPM(t *testing.T) {
	img := ToImage([]core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1)}, 2, 1, 1, 2.2)

	var buf bytes.Buffer
	if err := WritePPM(&buf, img); err != nil {
		t.Fatal(err)
	}
	expected := "P3\n2 1\n255\n255 0 0 0 0 255 \n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestSaveImage(t *testing.T) {
	img := ToImage([]core.Vec3{core.NewVec3(1, 1, 1), {}, {}, core.NewVec3(0.5, 0.5, 0.5)}, 2, 2, 1, 1)
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "nested", "out.png")
	if err := SaveImage(img, pngPath); err != nil {
		t.Fatalf("SaveImage png failed: %v", err)
	}
	file, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Decoding png failed: %v", err)
	}
	if decoded.Bounds().Dx() != 2 || decoded.Bounds().Dy() != 2 {
		t.Errorf("Unexpected bounds %v", decoded.Bounds())
	}
	if r, _, _, _ := decoded.At(0, 0).RGBA(); r>>8 != 255 {
		t.Errorf("Expected white top-left pixel, got red %d", r>>8)
	}

	ppmPath := filepath.Join(dir, "out.PPM")
	if err := SaveImage(img, ppmPath); err != nil {
		t.Fatalf("SaveImage ppm failed: %v", err)
	}
	data, err := os.ReadFile(ppmPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "P3\n2 2\n255\n") {
		t.Errorf("Expected PPM header, got %q", data)
	}
}
