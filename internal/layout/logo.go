package layout

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// fetchLogo retrieves and decodes the company logo with a bounded
// per-image timeout. A logo either reaches a terminal state (decoded or
// failed) within the budget or the fetch is abandoned; capture proceeds
// either way, so a slow host can never stall or silently race the
// snapshot.
func (c *Capture) fetchLogo(ctx context.Context, url string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.LogoTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid logo URL: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("logo fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logo fetch returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("logo decode failed: %w", err)
	}
	return img, nil
}
