package images

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	// WebP uploads are decodable; imaging itself carries no WebP codec.
	_ "golang.org/x/image/webp"
)

// CompressResult carries the outcome of one compression attempt. Data is
// always usable: on any decode or encode failure it holds the original
// buffer and Skipped is set, so the upload still proceeds.
type CompressResult struct {
	Data    []byte
	Ext     string // resolved output extension
	Skipped bool   // codec failure, Data is the untouched input
	Width   int
	Height  int
}

// Compress reduces an image buffer toward the policy's target byte budget.
// The budget is soft: when quality floor, minimum dimension and the
// iteration cap are all exhausted the best achieved buffer is returned even
// if it is still over target. Inputs already at or under target pass through
// unchanged, as do SVG (never rasterized) and GIF (re-encoding would drop
// animation frames). PNG and WebP are transcoded to JPEG with transparency
// flattened onto white; JPEG is re-encoded in place.
func Compress(data []byte, mediaType string, p Policy) CompressResult {
	srcExt, ok := ExtensionFor(mediaType)
	if !ok {
		srcExt = "bin"
	}
	res := CompressResult{Data: data, Ext: srcExt}

	if srcExt == "svg" || srcExt == "gif" {
		return res
	}
	if int64(len(data)) <= p.TargetBytes {
		return res
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		res.Skipped = true
		return res
	}
	b := img.Bounds()
	res.Width, res.Height = b.Dx(), b.Dy()

	if srcExt == "png" || srcExt == "webp" {
		img = flatten(img)
	}
	if b.Dx() > p.MaxDimension || b.Dy() > p.MaxDimension {
		// Fit keeps aspect ratio and never enlarges.
		img = imaging.Fit(img, p.MaxDimension, p.MaxDimension, imaging.Lanczos)
	}

	quality := int(float64(p.TargetBytes) * 100 / float64(len(data)))
	if quality > p.QualityCeiling {
		quality = p.QualityCeiling
	}
	if quality < p.QualityFloor {
		quality = p.QualityFloor
	}

	best := data
	cur := img
	for i := 0; i < p.MaxIterations; i++ {
		out, err := encodeJPEG(cur, quality)
		if err != nil {
			res.Skipped = true
			return res
		}
		if len(out) < len(best) {
			best = out
			cb := cur.Bounds()
			res.Width, res.Height = cb.Dx(), cb.Dy()
		}
		if int64(len(out)) <= p.TargetBytes {
			break
		}
		if quality > p.QualityFloor {
			quality -= p.QualityStep
			if quality < p.QualityFloor {
				quality = p.QualityFloor
			}
			continue
		}
		// Quality exhausted: shrink dimensions until the floor.
		w := cur.Bounds().Dx()
		h := cur.Bounds().Dy()
		longest := w
		if h > longest {
			longest = h
		}
		if longest <= p.MinDimension {
			break
		}
		next := longest * 3 / 4
		if next < p.MinDimension {
			next = p.MinDimension
		}
		cur = imaging.Fit(cur, next, next, imaging.Lanczos)
	}

	if len(best) >= len(data) {
		// Re-encoding did not help; keep the original bytes and format.
		return CompressResult{Data: data, Ext: srcExt, Width: res.Width, Height: res.Height}
	}
	res.Data = best
	res.Ext = "jpg"
	return res
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// flatten composites an image onto a white background so transparency
// survives the conversion to JPEG.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
