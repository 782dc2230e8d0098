package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// plainDirtSession builds a session whose grid holds nothing but layer dirt,
// so rendering never needs an item icon.
func plainDirtSession() *DigSession {
	s := NewDigSession(biomeBackyard, DigModifiers{}, testRand())
	for y, row := range s.grid {
		layer := s.biome.LayerAt(y)
		for x := range row {
			row[x] = &Cell{Item: layer.Dirt, HP: layer.Dirt.HP}
		}
	}
	return s
}

func decodeFrame(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding frame: %v", err)
	}
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestRenderDigImageDimensions(t *testing.T) {
	s := plainDirtSession()
	data, err := RenderDigImage(context.Background(), s, nil, RenderOptions{Active: true})
	if err != nil {
		t.Fatalf("RenderDigImage: %v", err)
	}
	b := decodeFrame(t, data).Bounds()
	if b.Dx() != digImageWidth || b.Dy() != digImageHeight {
		t.Errorf("frame is %dx%d, want %dx%d", b.Dx(), b.Dy(), digImageWidth, digImageHeight)
	}
}

func TestRenderDugCellFill(t *testing.T) {
	s := plainDirtSession()
	s.grid[1][0] = nil

	data, err := RenderDigImage(context.Background(), s, nil, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderDigImage: %v", err)
	}
	frame := decodeFrame(t, data)

	// At the surface the camera window starts at row -4, so row 1 draws five
	// cells down.
	start, _ := s.YRange()
	px := nrgbaAt(frame, 1, (1-start)*digCellWidth+1)
	want := digDugColor
	if px.R != want.R || px.G != want.G || px.B != want.B {
		t.Errorf("dug cell pixel = %v, want %v", px, want)
	}
}

func TestRenderTargetOutline(t *testing.T) {
	s := plainDirtSession()

	data, err := RenderDigImage(context.Background(), s, nil, RenderOptions{Active: true})
	if err != nil {
		t.Fatalf("RenderDigImage: %v", err)
	}
	frame := decodeFrame(t, data)

	start, _ := s.YRange()
	tx, ty := s.TargetXY()
	px := nrgbaAt(frame, tx*digCellWidth+1, (ty-start)*digCellWidth+1)
	want := digTargetOutline
	if px.R != want.R || px.G != want.G || px.B != want.B {
		t.Errorf("outline pixel = %v, want %v", px, want)
	}
}

func TestRenderCoinOverlay(t *testing.T) {
	s := plainDirtSession()
	s.grid[2][4] = &Cell{Coins: 50}

	data, err := RenderDigImage(context.Background(), s, nil, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderDigImage: %v", err)
	}
	frame := decodeFrame(t, data)

	start, _ := s.YRange()
	px := nrgbaAt(frame, 4*digCellWidth+digCellWidth/2, (2-start)*digCellWidth+digCellWidth/2)
	if px.R != 255 || px.G != 214 || px.B != 99 {
		t.Errorf("coin cell center = %v, want the coin face color", px)
	}
}

func TestRenderFogHidesUnexploredRows(t *testing.T) {
	s := plainDirtSession()

	data, err := RenderDigImage(context.Background(), s, nil, RenderOptions{Active: true})
	if err != nil {
		t.Fatalf("RenderDigImage: %v", err)
	}
	frame := decodeFrame(t, data)
	start, _ := s.YRange()

	// Rows 0 and 1 are always visible; row 3 is fogged for a fresh session
	// and keeps the translucent background.
	visible := nrgbaAt(frame, 4*digCellWidth+1, (0-start)*digCellWidth+1)
	if visible.A != 255 {
		t.Errorf("visible row alpha = %d, want opaque", visible.A)
	}
	fogged := nrgbaAt(frame, 4*digCellWidth+1, (3-start)*digCellWidth+1)
	if fogged.A != digBackgroundColor.A {
		t.Errorf("fogged row alpha = %d, want %d", fogged.A, digBackgroundColor.A)
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := plainDirtSession()
	s.grid[1][2] = nil
	s.grid[2][4] = &Cell{Coins: 50}

	first, err := RenderDigImage(context.Background(), s, nil, RenderOptions{Active: true})
	if err != nil {
		t.Fatalf("RenderDigImage: %v", err)
	}
	second, err := RenderDigImage(context.Background(), s, nil, RenderOptions{Active: true})
	if err != nil {
		t.Fatalf("RenderDigImage: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("re-rendering the same state with warmed caches changed the frame")
	}
}

func TestScaleNearest(t *testing.T) {
	src := digAssets.DirtVariants(biomeBackyard.Layers[0])[0]
	scaled := scaleNearest(src, 16, 16)
	if b := scaled.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("scaled to %dx%d, want 16x16", b.Dx(), b.Dy())
	}
	if same := scaleNearest(src, src.Bounds().Dx(), src.Bounds().Dy()); same != src {
		t.Error("same-size scale should return the source image")
	}
}

func TestEmojiImageURL(t *testing.T) {
	tests := []struct {
		emoji   string
		want    string
		wantErr bool
	}{
		{"<:worm:1379661232021180617>", "https://cdn.discordapp.com/emojis/1379661232021180617.png?size=64", false},
		{"<a:party:123>", "https://cdn.discordapp.com/emojis/123.png?size=64", false},
		{"🐹", "", true},
		{"<:broken>", "", true},
	}
	for _, tt := range tests {
		got, err := emojiImageURL(tt.emoji)
		if (err != nil) != tt.wantErr {
			t.Errorf("emojiImageURL(%q) error = %v, wantErr %v", tt.emoji, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("emojiImageURL(%q) = %q, want %q", tt.emoji, got, tt.want)
		}
	}
}
