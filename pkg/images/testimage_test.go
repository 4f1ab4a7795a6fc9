package images

import (
	"bytes"
	"image"
	"math/rand"
	"testing"

	"github.com/disintegration/imaging"
)

// noiseImage produces a worst-case-compressible image so size assertions
// stay meaningful. Seeded for reproducibility.
func noiseImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rnd := rand.New(rand.NewSource(1))
	for i := range img.Pix {
		img.Pix[i] = uint8(rnd.Intn(256))
	}
	return img
}

func noiseJPEG(t *testing.T, w, h, quality int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, noiseImage(w, h), imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func noisePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, noiseImage(w, h), imaging.PNG); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// testPolicy shrinks the byte and pixel budgets so fixtures stay small.
func testPolicy() Policy {
	p := DefaultPolicy()
	p.MaxUploadBytes = 1 << 20
	p.TargetBytes = 50 * 1024
	p.MaxDimension = 300
	p.MinDimension = 50
	return p
}
