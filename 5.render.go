package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// Board colors: the flat fill for an excavated slot and the translucent
// brown that backs everything not otherwise painted.
var (
	digDugColor        = color.RGBA{R: 88, G: 50, B: 15, A: 255}
	digBackgroundColor = color.RGBA{R: 72, G: 48, B: 13, A: 150}
	digTargetOutline   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// RenderOptions control one frame. Active enables the fog of war and is
// false only for the final frame of a finished session; DrawHP dims damaged
// tiles by remaining HP after an area blast.
type RenderOptions struct {
	Active bool
	DrawHP bool
}

// RenderDigImage composites the session's visible window into a PNG. The
// avatar is the pre-masked player overlay; a nil avatar is skipped. The only
// error source is icon population for on-screen items, which aborts the
// whole frame.
func RenderDigImage(ctx context.Context, s *DigSession, avatar *image.RGBA, opts RenderOptions) ([]byte, error) {
	start, stop := s.YRange()
	if err := prepareLayerAssets(ctx, s, start, stop); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, digImageWidth, digImageHeight))
	fillRect(img, img.Bounds(), digBackgroundColor)

	for y := start; y < stop; y++ {
		if y < 0 {
			continue
		}
		for x := 0; x < digGridWidth; x++ {
			cell := s.grid[y][x]
			px, py := x*digCellWidth, (y-start)*digCellWidth
			cellRect := image.Rect(px, py, px+digCellWidth, py+digCellWidth)

			if cell == nil {
				fillRect(img, cellRect, digDugColor)
				continue
			}
			if opts.Active && y >= s.y && !s.Visible(x, y) {
				continue
			}

			layer := s.biome.LayerAt(y)
			variants := digAssets.DirtVariants(layer)
			pasteOpaque(img, variants[cell.DirtIndex], px, py)

			if cell.Coins > 0 || cell.Item != nil && cell.Item.Type != ItemTypeDirt {
				overlay := digAssets.CoinIcon()
				if cell.Coins == 0 {
					// Icon is cached by prepareLayerAssets above.
					overlay, _ = digAssets.Icon(ctx, cell.Item)
				}
				pasteOver(img, overlay, px+digOverlayPad, py+digOverlayPad)
			}

			if opts.DrawHP && cell.Item != nil {
				alpha := int(255 * max(0, cell.HP/cell.Item.HP+0.2))
				if alpha > 255 {
					continue
				}
				setRectAlpha(img, cellRect, uint8(alpha))
			}
		}
	}

	// Scenery only shows while there is blank space above the top dirt row.
	trueOrigin := digYOffset - max(0, s.y)*digCellWidth
	if trueOrigin > -digBGOffset {
		backdrop := digAssets.Backdrop(s.biome)
		pasteOver(img, backdrop, 0, trueOrigin-backdrop.Bounds().Dy()+digBGOffset)
	}

	if avatar != nil {
		ax, ay := s.x*digCellWidth, (s.y-start)*digCellWidth
		pasteOver(img, avatar, ax+digOverlayPad, ay+digOverlayPad)
	}

	tx, ty := s.TargetXY()
	outlineRect(img, image.Rect(tx*digCellWidth, (ty-start)*digCellWidth,
		tx*digCellWidth+digCellWidth, (ty-start)*digCellWidth+digCellWidth), digTargetOutline, 2)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// prepareLayerAssets warms the texture and icon caches for every row the
// camera can currently see, so the pixel loop never fetches.
func prepareLayerAssets(ctx context.Context, s *DigSession, start, stop int) error {
	for y := max(0, start); y < stop; y++ {
		digAssets.DirtVariants(s.biome.LayerAt(y))
		for x := 0; x < digGridWidth; x++ {
			cell := s.grid[y][x]
			if cell == nil || cell.Item == nil || cell.Item.Type == ItemTypeDirt {
				continue
			}
			if _, err := digAssets.Icon(ctx, cell.Item); err != nil {
				return err
			}
		}
	}
	return nil
}

// ===========================
// Pixel helpers
// ===========================

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// pasteOpaque replaces the destination rectangle entirely, alpha included.
func pasteOpaque(dst *image.RGBA, src *image.RGBA, x, y int) {
	r := src.Bounds().Sub(src.Bounds().Min).Add(image.Pt(x, y))
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
}

// pasteOver alpha-composites src onto dst.
func pasteOver(dst *image.RGBA, src *image.RGBA, x, y int) {
	r := src.Bounds().Sub(src.Bounds().Min).Add(image.Pt(x, y))
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
}

func setRectAlpha(img *image.RGBA, r image.Rectangle, alpha uint8) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[i+3] = alpha
			i += 4
		}
	}
}

func outlineRect(img *image.RGBA, r image.Rectangle, c color.RGBA, width int) {
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	fillRect(img, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// scaleNearest resizes with nearest-neighbor sampling, matching how the
// pixel-art tiles and icons are meant to look.
func scaleNearest(src *image.RGBA, w, h int) *image.RGBA {
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw == w && sh == h {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		sy := sb.Min.Y + y*sh/h
		for x := 0; x < w; x++ {
			sx := sb.Min.X + x*sw/w
			dst.SetRGBA(x, y, src.RGBAAt(sx, sy))
		}
	}
	return dst
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
