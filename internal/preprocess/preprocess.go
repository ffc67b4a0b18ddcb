// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preprocess derives candidate bitmaps from one label photograph.
// Label photos vary unpredictably in lighting, angle, and print quality, so
// no single transform chain dominates; the extraction engine runs the
// recognizer against every variant and keeps the best result.
package preprocess

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Variant is one preprocessed rendition of the source image together with
// the ordered transform steps that produced it.
type Variant struct {
	Name  string
	Image image.Image
	Steps []string
}

// Variants applies the fixed transform set and returns all renditions. The
// source image is only read; every variant owns an independent bitmap.
func Variants(src image.Image) []Variant {
	gray := imaging.Grayscale(src)

	blurred := imaging.Blur(gray, 1.0)
	otsu := binarize(blurred, otsuThreshold(blurred))

	denoised := imaging.Blur(gray, 0.6)
	denoisedOtsu := binarize(denoised, otsuThreshold(denoised))

	return []Variant{
		{Name: "original", Image: imaging.Clone(src), Steps: []string{"none"}},
		{Name: "grayscale", Image: gray, Steps: []string{"grayscale"}},
		{
			Name:  "gaussian_otsu",
			Image: otsu,
			Steps: []string{"grayscale", "gaussian_blur", "otsu_threshold"},
		},
		{
			Name:  "adaptive_threshold",
			Image: adaptiveThreshold(gray, 11, 2),
			Steps: []string{"grayscale", "adaptive_threshold"},
		},
		{
			Name:  "morphological_close",
			Image: morphClose(otsu),
			Steps: []string{"grayscale", "gaussian_blur", "otsu_threshold", "morphological_close"},
		},
		{
			Name:  "denoised",
			Image: denoisedOtsu,
			Steps: []string{"grayscale", "median_blur", "otsu_threshold"},
		},
		{
			Name:  "edge_enhanced",
			Image: imaging.AdjustContrast(imaging.Sharpen(gray, 1.5), 40),
			Steps: []string{"grayscale", "sharpen", "contrast_enhance"},
		},
	}
}

// EncodePNG serializes a variant for the recognizer.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding variant: %w", err)
	}
	return buf.Bytes(), nil
}

// otsuThreshold picks the global binarization threshold that minimizes
// intra-class variance over the grayscale histogram.
func otsuThreshold(img *image.NRGBA) uint8 {
	var hist [256]int
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 128
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// Grayscale input, so the red channel carries the luma.
			hist[img.NRGBAAt(x, y).R]++
		}
	}

	var sum float64
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var sumB, wB float64
	var maxVar float64
	best := uint8(128)
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > maxVar {
			maxVar = between
			best = uint8(t)
		}
	}
	return best
}

// binarize maps pixels above the threshold to white and the rest to black.
func binarize(img *image.NRGBA, threshold uint8) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		if c.R > threshold {
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	})
}

// adaptiveThreshold binarizes against the local mean over a window x window
// neighborhood minus a constant offset. Handles uneven lighting that defeats
// a single global threshold.
func adaptiveThreshold(img *image.NRGBA, window, offset int) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out
	}

	// Summed-area table over the luma channel.
	integral := make([]int, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		rowSum := 0
		for x := 0; x < w; x++ {
			rowSum += int(img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y).R)
			integral[(y+1)*(w+1)+x+1] = integral[y*(w+1)+x+1] + rowSum
		}
	}

	half := window / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := max(0, x-half), max(0, y-half)
			x1, y1 := min(w-1, x+half), min(h-1, y+half)
			area := (x1 - x0 + 1) * (y1 - y0 + 1)
			sum := integral[(y1+1)*(w+1)+x1+1] - integral[y0*(w+1)+x1+1] -
				integral[(y1+1)*(w+1)+x0] + integral[y0*(w+1)+x0]
			mean := sum / area

			v := int(img.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y).R)
			px := color.NRGBA{A: 255}
			if v > mean-offset {
				px.R, px.G, px.B = 255, 255, 255
			}
			out.SetNRGBA(x, y, px)
		}
	}
	return out
}

// morphClose dilates then erodes a binary image with a 3x3 kernel, filling
// small gaps inside glyph strokes left by thresholding.
func morphClose(img *image.NRGBA) *image.NRGBA {
	return erode(dilate(img))
}

func dilate(img *image.NRGBA) *image.NRGBA { return rankFilter(img, true) }
func erode(img *image.NRGBA) *image.NRGBA  { return rankFilter(img, false) }

func rankFilter(img *image.NRGBA, takeMax bool) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var best uint8
			if !takeMax {
				best = 255
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					v := img.NRGBAAt(bounds.Min.X+nx, bounds.Min.Y+ny).R
					if takeMax && v > best || !takeMax && v < best {
						best = v
					}
				}
			}
			out.SetNRGBA(x, y, color.NRGBA{R: best, G: best, B: best, A: 255})
		}
	}
	return out
}
