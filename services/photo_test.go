package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func encodeTestPNG(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestOriginAllowed(t *testing.T) {
	allowed := []string{"https://cdn.example.org", "http://127.0.0.1:8090/"}
	cases := []struct {
		url  string
		want bool
	}{
		{"https://cdn.example.org/photos/1.jpg", true},
		{"http://127.0.0.1:8090/api/files/members/x/photo.png", true},
		{"https://evil.example.com/photos/1.jpg", false},
		{"https://cdn.example.org.evil.com/1.jpg", false},
		{"not a url", false},
		{"", false},
	}
	for _, c := range cases {
		if got := OriginAllowed(c.url, allowed); got != c.want {
			t.Errorf("OriginAllowed(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}

func TestDecodeDataURL(t *testing.T) {
	raw := encodeTestPNG(t, color.RGBA{R: 255, A: 255})
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	img, err := DecodeDataURL(dataURL)
	if err != nil {
		t.Fatalf("DecodeDataURL failed: %v", err)
	}
	r, _, _, _ := img.At(2, 2).RGBA()
	if r < 0xf000 {
		t.Errorf("decoded image lost its red channel: %d", r)
	}

	if _, err := DecodeDataURL("https://example.com/a.png"); err == nil {
		t.Error("non-data URL should be rejected")
	}
	if _, err := DecodeDataURL("data:image/png;base64,!!!"); err == nil {
		t.Error("bad base64 payload should be rejected")
	}
}

func TestFetchRemotePhotoDisallowedOrigin(t *testing.T) {
	_, err := FetchRemotePhoto(context.Background(), "https://uncontrolled.example.net/p.jpg", nil)
	if err == nil {
		t.Fatal("fetch from an origin off the allow-list must fail")
	}
}

func TestFetchRemotePhotoFromAllowedOrigin(t *testing.T) {
	raw := encodeTestPNG(t, color.RGBA{G: 255, A: 255})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(raw)
	}))
	defer srv.Close()

	img, err := FetchRemotePhoto(context.Background(), srv.URL+"/p.png", []string{srv.URL})
	if err != nil {
		t.Fatalf("FetchRemotePhoto failed: %v", err)
	}
	_, g, _, _ := img.At(2, 2).RGBA()
	if g < 0xf000 {
		t.Errorf("fetched image lost its green channel: %d", g)
	}
}

func TestFetchRemotePhotoBoundedWait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Never answers within the client's deadline.
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := FetchRemotePhoto(ctx, srv.URL+"/p.png", []string{srv.URL})
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("fetch did not respect the context deadline, took %v", elapsed)
	}
}
