package main

import (
	"context"
	"fmt"
	"hash/maphash"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Process-wide asset cache for the digging renderer. Everything in here is
// immutable once stored, so concurrent population is merely deduplicated
// work, never a correctness problem. Procedural assets (dirt textures, the
// coin icon, backdrops, the avatar mask) never touch the network; item icons
// and avatars come from the Discord CDN behind a shared rate limiter.
type assetStore struct {
	mu        sync.RWMutex
	dirt      map[string][]*image.RGBA
	icons     map[string]*image.RGBA
	avatars   map[snowflake.ID]*image.RGBA
	backdrops map[string]*image.RGBA
	coinIcon  *image.RGBA
	mask      *image.Alpha

	group   singleflight.Group
	limiter *rate.Limiter
}

var digAssets = &assetStore{
	dirt:      map[string][]*image.RGBA{},
	icons:     map[string]*image.RGBA{},
	avatars:   map[snowflake.ID]*image.RGBA{},
	backdrops: map[string]*image.RGBA{},
	limiter:   rate.NewLimiter(rate.Limit(10), 20),
}

// emojiImageURL resolves a custom emoji string like <:worm:1234> to its CDN
// image. Animated emojis resolve to a still frame.
func emojiImageURL(emoji string) (string, error) {
	trimmed := strings.TrimSuffix(emoji, ">")
	var rest string
	switch {
	case strings.HasPrefix(trimmed, "<:"):
		rest = strings.TrimPrefix(trimmed, "<:")
	case strings.HasPrefix(trimmed, "<a:"):
		rest = strings.TrimPrefix(trimmed, "<a:")
	default:
		return "", fmt.Errorf("not a custom emoji: %q", emoji)
	}
	_, id, found := strings.Cut(rest, ":")
	if !found || id == "" {
		return "", fmt.Errorf("malformed emoji: %q", emoji)
	}
	return fmt.Sprintf("https://cdn.discordapp.com/emojis/%s.png?size=64", id), nil
}

func (a *assetStore) fetchImage(ctx context.Context, url string, size int) (*image.RGBA, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}
	decoded, err := png.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	return scaleNearest(toRGBA(decoded), size, size), nil
}

// ===========================
// Dirt textures
// ===========================

// DirtVariants returns the pre-rendered texture variants for a layer's dirt,
// generating and caching them on first use.
func (a *assetStore) DirtVariants(layer *Layer) []*image.RGBA {
	a.mu.RLock()
	variants, ok := a.dirt[layer.Dirt.Key]
	a.mu.RUnlock()
	if ok {
		return variants
	}

	out, _, _ := a.group.Do("dirt:"+layer.Dirt.Key, func() (any, error) {
		rng := rand.New(rand.NewPCG(new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64()))
		generated := make([]*image.RGBA, digDirtVariants)
		for i := range generated {
			generated[i] = generateDirtTile(layer, rng)
		}
		a.mu.Lock()
		a.dirt[layer.Dirt.Key] = generated
		a.mu.Unlock()
		return generated, nil
	})
	return out.([]*image.RGBA)
}

// generateDirtTile paints one cell-sized tile: the layer's base color with
// grain flecks scattered at least three grain-widths apart.
func generateDirtTile(layer *Layer, rng *rand.Rand) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, digCellWidth, digCellWidth))
	fillRect(img, img.Bounds(), layer.DirtColor)

	lo, hi := digGrainWidth, digCellWidth-digGrainWidth*2
	tolerance := digGrainWidth * 3
	type point struct{ x, y int }
	var points []point
	for len(points) < layer.GrainDensity {
		x := lo + rng.IntN(hi-lo+1)
		y := lo + rng.IntN(hi-lo+1)
		tooClose := false
		for _, p := range points {
			if abs(x-p.x) < tolerance && abs(y-p.y) < tolerance {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		points = append(points, point{x, y})
	}

	for _, p := range points {
		fillRect(img, image.Rect(p.x, p.y, p.x+digGrainWidth, p.y+digGrainWidth), layer.GrainColors.Choice(rng))
	}
	return img
}

// ===========================
// Item icons and avatars
// ===========================

// Icon returns the overlay-sized icon for an item, fetching it from the
// emoji CDN on first use. A fetch failure fails the caller's render.
func (a *assetStore) Icon(ctx context.Context, item *Item) (*image.RGBA, error) {
	a.mu.RLock()
	icon, ok := a.icons[item.Key]
	a.mu.RUnlock()
	if ok {
		return icon, nil
	}

	out, err, _ := a.group.Do("icon:"+item.Key, func() (any, error) {
		url, err := emojiImageURL(item.Emoji)
		if err != nil {
			return nil, err
		}
		fetched, err := a.fetchImage(ctx, url, digOverlayWidth)
		if err != nil {
			return nil, err
		}
		a.mu.Lock()
		a.icons[item.Key] = fetched
		a.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*image.RGBA), nil
}

// Avatar returns a player's avatar scaled to overlay size with the circular
// mask applied.
func (a *assetStore) Avatar(ctx context.Context, userID snowflake.ID, url string) (*image.RGBA, error) {
	a.mu.RLock()
	avatar, ok := a.avatars[userID]
	a.mu.RUnlock()
	if ok {
		return avatar, nil
	}

	out, err, _ := a.group.Do("avatar:"+userID.String(), func() (any, error) {
		fetched, err := a.fetchImage(ctx, url, digOverlayWidth)
		if err != nil {
			return nil, err
		}
		mask := a.AvatarMask()
		for y := 0; y < digOverlayWidth; y++ {
			for x := 0; x < digOverlayWidth; x++ {
				i := fetched.PixOffset(x, y)
				fetched.Pix[i+3] = min(fetched.Pix[i+3], mask.AlphaAt(x, y).A)
			}
		}
		a.mu.Lock()
		a.avatars[userID] = fetched
		a.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*image.RGBA), nil
}

// InvalidateAvatar drops a cached avatar so the next session refetches it.
func (a *assetStore) InvalidateAvatar(userID snowflake.ID) {
	a.mu.Lock()
	delete(a.avatars, userID)
	a.mu.Unlock()
}

// AvatarMask is the shared circular alpha mask for avatar overlays.
func (a *assetStore) AvatarMask() *image.Alpha {
	a.mu.RLock()
	mask := a.mask
	a.mu.RUnlock()
	if mask != nil {
		return mask
	}

	out, _, _ := a.group.Do("mask", func() (any, error) {
		generated := image.NewAlpha(image.Rect(0, 0, digOverlayWidth, digOverlayWidth))
		center := (float64(digOverlayWidth) - 1) / 2
		radius := float64(digOverlayWidth) / 2
		for y := 0; y < digOverlayWidth; y++ {
			for x := 0; x < digOverlayWidth; x++ {
				dx, dy := float64(x)-center, float64(y)-center
				if dx*dx+dy*dy <= radius*radius {
					generated.SetAlpha(x, y, color.Alpha{A: 255})
				}
			}
		}
		a.mu.Lock()
		a.mask = generated
		a.mu.Unlock()
		return generated, nil
	})
	return out.(*image.Alpha)
}

// CoinIcon is the shared overlay for coin cells.
func (a *assetStore) CoinIcon() *image.RGBA {
	a.mu.RLock()
	icon := a.coinIcon
	a.mu.RUnlock()
	if icon != nil {
		return icon
	}

	out, _, _ := a.group.Do("coin", func() (any, error) {
		generated := image.NewRGBA(image.Rect(0, 0, digOverlayWidth, digOverlayWidth))
		center := (float64(digOverlayWidth) - 1) / 2
		outer := float64(digOverlayWidth)/2 - 1
		rim := outer - 2
		inner := rim - 5
		for y := 0; y < digOverlayWidth; y++ {
			for x := 0; x < digOverlayWidth; x++ {
				dx, dy := float64(x)-center, float64(y)-center
				d := dx*dx + dy*dy
				switch {
				case d <= inner*inner:
					generated.SetRGBA(x, y, color.RGBA{R: 255, G: 214, B: 99, A: 255})
				case d <= rim*rim:
					generated.SetRGBA(x, y, color.RGBA{R: 240, G: 185, B: 45, A: 255})
				case d <= outer*outer:
					generated.SetRGBA(x, y, color.RGBA{R: 173, G: 126, B: 16, A: 255})
				}
			}
		}
		a.mu.Lock()
		a.coinIcon = generated
		a.mu.Unlock()
		return generated, nil
	})
	return out.(*image.RGBA)
}

// ===========================
// Backdrops
// ===========================

// Backdrop returns the above-ground scenery strip for a biome. It spans the
// full image width and ends digBGOffset pixels below the first dirt row.
func (a *assetStore) Backdrop(biome *Biome) *image.RGBA {
	a.mu.RLock()
	backdrop, ok := a.backdrops[biome.Key]
	a.mu.RUnlock()
	if ok {
		return backdrop
	}

	out, _, _ := a.group.Do("backdrop:"+biome.Key, func() (any, error) {
		generated := generateBackdrop(biome)
		a.mu.Lock()
		a.backdrops[biome.Key] = generated
		a.mu.Unlock()
		return generated, nil
	})
	return out.(*image.RGBA)
}

func generateBackdrop(biome *Biome) *image.RGBA {
	const height = digYOffset + digBGOffset
	img := image.NewRGBA(image.Rect(0, 0, digImageWidth, height))

	skyTop, skyHorizon, ground := backdropPalette(biome)
	groundTop := height - digBGOffset
	for y := 0; y < groundTop; y++ {
		t := float64(y) / float64(groundTop-1)
		c := lerpRGBA(skyTop, skyHorizon, t)
		for x := 0; x < digImageWidth; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	fillRect(img, image.Rect(0, groundTop, digImageWidth, height), ground)

	// Sun disc in the upper right corner.
	sunX, sunY, sunR := digImageWidth-72.0, 56.0, 28.0
	for y := 0; y < groundTop; y++ {
		for x := 0; x < digImageWidth; x++ {
			dx, dy := float64(x)-sunX, float64(y)-sunY
			if dx*dx+dy*dy <= sunR*sunR {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 236, B: 160, A: 255})
			}
		}
	}
	return img
}

func backdropPalette(biome *Biome) (skyTop, skyHorizon, ground color.RGBA) {
	switch biome.Key {
	case "desert":
		return rgb(252, 204, 136), rgb(255, 238, 196), rgb(228, 188, 138)
	default:
		return rgb(110, 178, 235), rgb(190, 226, 250), rgb(92, 152, 72)
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
