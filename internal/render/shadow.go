// Package render provides raster post-processing applied to captures
// before they are saved or shown.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/snipmark/internal/raster"
)

// ShadowOptions configures the drop shadow effect.
type ShadowOptions struct {
	// Blur is the box-blur radius applied to the shadow silhouette.
	Blur int
	// OffsetX and OffsetY displace the shadow from the image.
	OffsetX int
	OffsetY int
	// Margin pads the canvas on all sides so the shadow has room.
	Margin int
	// Color is the shadow tint, straight alpha.
	Color color.RGBA
	// Background fills the padded canvas when its alpha is non-zero.
	// Leave transparent for PNG output; opaque formats want a fill.
	Background color.RGBA
}

// DefaultShadowOptions returns a conservative drop shadow that works
// well with most screenshots.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Blur:    12,
		OffsetX: 6,
		OffsetY: 6,
		Margin:  24,
		Color:   color.RGBA{A: 140},
	}
}

// ApplyShadow returns a new image with img composited over its blurred
// drop shadow on a margin-padded canvas. A nil image stays nil; an
// all-default no-op configuration returns img unchanged.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) *image.RGBA {
	if img == nil {
		return nil
	}
	src := img.Bounds()
	if src.Empty() {
		return img
	}
	blur := opts.Blur
	if blur < 0 {
		blur = 0
	}
	margin := opts.Margin
	if margin < 0 {
		margin = 0
	}
	if opts.Color.A == 0 && margin == 0 && opts.Background.A == 0 {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, src.Dx()+2*margin, src.Dy()+2*margin))
	if opts.Background.A > 0 {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(raster.Premultiply(opts.Background)), image.Point{}, draw.Src)
	}

	if opts.Color.A > 0 {
		// The silhouette mask carries the source alpha, padded by the
		// blur radius so the blur can spread past the image edge.
		mask := image.NewGray(image.Rect(0, 0, src.Dx()+2*blur, src.Dy()+2*blur))
		for y := 0; y < src.Dy(); y++ {
			for x := 0; x < src.Dx(); x++ {
				a := img.RGBAAt(src.Min.X+x, src.Min.Y+y).A
				if a == 0 {
					continue
				}
				mask.SetGray(x+blur, y+blur, color.Gray{Y: a})
			}
		}
		blurred := boxBlur(mask, blur)
		origin := image.Pt(margin-blur+opts.OffsetX, margin-blur+opts.OffsetY)
		draw.DrawMask(dst, blurred.Bounds().Add(origin), image.NewUniform(raster.Premultiply(opts.Color)),
			image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
	}

	draw.Draw(dst, image.Rect(margin, margin, margin+src.Dx(), margin+src.Dy()), img, src.Min, draw.Over)
	return dst
}

// boxBlur runs a separable box blur over a gray mask using row and
// column prefix sums, clamping at the edges.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	for y := 0; y < h; y++ {
		rowStart := y * src.Stride
		tmpStart := y * tmp.Stride
		prefix := make([]int, w+1)
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[rowStart+x])
		}
		for x := 0; x < w; x++ {
			x0 := x - radius
			if x0 < 0 {
				x0 = 0
			}
			x1 := x + radius
			if x1 >= w {
				x1 = w - 1
			}
			sum := prefix[x1+1] - prefix[x0]
			tmp.Pix[tmpStart+x] = uint8(sum / (x1 - x0 + 1))
		}
	}

	for x := 0; x < w; x++ {
		prefix := make([]int, h+1)
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := y - radius
			if y0 < 0 {
				y0 = 0
			}
			y1 := y + radius
			if y1 >= h {
				y1 = h - 1
			}
			sum := prefix[y1+1] - prefix[y0]
			dst.Pix[y*dst.Stride+x] = uint8(sum / (y1 - y0 + 1))
		}
	}

	return dst
}
