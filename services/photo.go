package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// PhotoFetchTimeout bounds the wait for a remote member photo. A source that
// never answers must not hang the card export.
const PhotoFetchTimeout = 5 * time.Second

// LoadRecordPhoto reads and decodes the photo file stored on a record.
func LoadRecordPhoto(app *pocketbase.PocketBase, record *core.Record, field string) (image.Image, error) {
	filename := record.GetString(field)
	if filename == "" {
		return nil, fmt.Errorf("record %s has no %s file", record.Id, field)
	}

	fsys, err := app.NewFilesystem()
	if err != nil {
		return nil, fmt.Errorf("could not open app filesystem: %w", err)
	}
	defer fsys.Close()

	r, err := fsys.GetReader(record.BaseFilesPath() + "/" + filename)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", filename, err)
	}
	defer r.Close()

	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filename, err)
	}
	return img, nil
}

// OriginAllowed reports whether a remote photo URL may be fetched. Only the
// scheme://host part is compared against the allow-list.
func OriginAllowed(rawURL string, allowed []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	origin := u.Scheme + "://" + u.Host
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSuffix(a, "/"), origin) {
			return true
		}
	}
	return false
}

// DecodeDataURL decodes a base64 data: URL into an image.
func DecodeDataURL(rawURL string) (image.Image, error) {
	_, payload, ok := strings.Cut(rawURL, ",")
	if !ok || !strings.HasPrefix(rawURL, "data:") {
		return nil, fmt.Errorf("not a data URL")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("could not decode data URL payload: %w", err)
	}
	img, err := imaging.Decode(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("data URL is not a decodable image: %w", err)
	}
	return img, nil
}

// FetchRemotePhoto downloads and decodes a photo from an allowed origin.
// The caller's context bounds the wait.
func FetchRemotePhoto(ctx context.Context, rawURL string, allowed []string) (image.Image, error) {
	if strings.HasPrefix(rawURL, "data:") {
		return DecodeDataURL(rawURL)
	}
	if !OriginAllowed(rawURL, allowed) {
		return nil, fmt.Errorf("origin of %q is not on the allow-list", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid photo URL: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photo fetch returned status %d", resp.StatusCode)
	}

	img, err := imaging.Decode(io.LimitReader(resp.Body, MaxUploadSize))
	if err != nil {
		return nil, fmt.Errorf("could not decode fetched photo: %w", err)
	}
	return img, nil
}

// ResolvePortrait produces the image to print on a member's ID card. It
// prefers the stored photo file, then a remote photo_url from an allowed
// origin (bounded by PhotoFetchTimeout), and falls back to a deterministic
// initials avatar. A bad photo alone never fails a card export.
func ResolvePortrait(ctx context.Context, app *pocketbase.PocketBase, record *core.Record, allowedOrigins []string) image.Image {
	if record.GetString("photo") != "" {
		img, err := LoadRecordPhoto(app, record, "photo")
		if err == nil {
			return img
		}
		log.Printf("portrait: stored photo unusable for %s: %v", record.Id, err)
	}

	if rawURL := record.GetString("photo_url"); rawURL != "" {
		fetchCtx, cancel := context.WithTimeout(ctx, PhotoFetchTimeout)
		defer cancel()
		img, err := FetchRemotePhoto(fetchCtx, rawURL, allowedOrigins)
		if err == nil {
			return img
		}
		log.Printf("portrait: remote photo unusable for %s: %v", record.Id, err)
	}

	return InitialsAvatar(record.GetString("full_name"), PortraitWidth, PortraitHeight)
}
