package render

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"invoice-engine/internal/domain"
)

// AssetLoader fetches an image referenced by the letterhead (logo, stamp).
type AssetLoader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// URLLoader loads http(s) URLs with Client and anything else from disk.
type URLLoader struct {
	Client *http.Client
}

func (l URLLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return l.fetch(ctx, ref)
	}
	f, err := os.Open(strings.TrimPrefix(ref, "file://"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func (l URLLoader) fetch(ctx context.Context, url string) (image.Image, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	return img, err
}

// assetSet loads named images concurrently. Once the wait gives up the set is
// frozen: late results are dropped so every page sees the same assets.
type assetSet struct {
	mu     sync.Mutex
	closed bool
	refs   map[string]string
	images map[string]image.Image
	errs   map[string]error
}

func newAssetSet(refs map[string]string) *assetSet {
	clean := make(map[string]string, len(refs))
	for name, ref := range refs {
		if strings.TrimSpace(ref) != "" {
			clean[name] = ref
		}
	}
	return &assetSet{
		refs:   clean,
		images: make(map[string]image.Image, len(clean)),
		errs:   make(map[string]error),
	}
}

// wait loads every asset and returns when all finished or ctx is done. On
// ctx expiry it returns a RenderTimeoutError naming how many are pending.
func (a *assetSet) wait(ctx context.Context, loader AssetLoader) error {
	if len(a.refs) == 0 || loader == nil {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for name, ref := range a.refs {
		g.Go(func() error {
			img, err := loader.Load(gctx, ref)
			a.mu.Lock()
			defer a.mu.Unlock()
			if a.closed {
				return nil
			}
			if err != nil {
				// a broken logo must not fail the document
				a.errs[name] = err
				return nil
			}
			a.images[name] = img
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		a.mu.Lock()
		a.closed = true
		pending := len(a.refs) - len(a.images) - len(a.errs)
		a.mu.Unlock()
		return domain.RenderTimeoutError{Pending: pending, Err: ctx.Err()}
	}
}

func (a *assetSet) get(name string) image.Image {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.images[name]
}

func (a *assetSet) failures() map[string]error {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]error, len(a.errs))
	for k, v := range a.errs {
		out[k] = v
	}
	return out
}

func (a *assetSet) clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.images = map[string]image.Image{}
}
