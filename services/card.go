package services

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Card geometry. Base size follows the CR80 aspect ratio (85.6 × 54 mm);
// everything is rendered at cardScale for print legibility.
const (
	cardBaseWidth  = 428
	cardBaseHeight = 270
	cardScale      = 2

	// PortraitWidth and PortraitHeight are the portrait box in base units.
	PortraitWidth  = 96
	PortraitHeight = 120
)

// OrgName appears on the card header band.
const OrgName = "Community Seva Sangham"

// CardData holds everything printed on an ID card.
type CardData struct {
	MembershipID string
	FullName     string
	FatherName   string
	Phone        string
	Mandal       string
	District     string
	State        string
	IssuedOn     string
	Portrait     image.Image // nil falls back to an initials avatar
}

// avatarPalette is the set of background colors for initials avatars.
var avatarPalette = [][3]float64{
	{0.20, 0.47, 0.75},
	{0.76, 0.33, 0.20},
	{0.26, 0.60, 0.36},
	{0.54, 0.31, 0.65},
	{0.75, 0.56, 0.15},
}

func fontFace(ttf []byte, size float64) (font.Face, error) {
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Initials derives up to two uppercase initials from a name.
func Initials(name string) string {
	var out []byte
	for _, part := range strings.Fields(strings.ToUpper(name)) {
		out = append(out, part[0])
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

// InitialsAvatar renders the fallback portrait used when no usable photo
// exists: a colored disc with the member's initials, deterministic per name.
func InitialsAvatar(name string, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetRGB(0.93, 0.93, 0.93)
	dc.Clear()

	h := fnv.New32a()
	h.Write([]byte(name))
	c := avatarPalette[int(h.Sum32())%len(avatarPalette)]

	cx := float64(width) / 2
	cy := float64(height) / 2
	r := cx
	if cy < cx {
		r = cy
	}
	dc.SetRGB(c[0], c[1], c[2])
	dc.DrawCircle(cx, cy, r*0.85)
	dc.Fill()

	face, err := fontFace(gobold.TTF, float64(height)*0.34)
	if err == nil {
		dc.SetFontFace(face)
		dc.SetRGB(1, 1, 1)
		dc.DrawStringAnchored(Initials(name), cx, cy, 0.5, 0.5)
	}

	return dc.Image()
}

// RenderIDCard rasterizes a member ID card to PNG bytes at 2× scale with an
// opaque white background.
func RenderIDCard(data CardData) ([]byte, error) {
	if data.MembershipID == "" {
		return nil, fmt.Errorf("cannot render a card without a membership ID")
	}

	w := cardBaseWidth * cardScale
	h := cardBaseHeight * cardScale
	dc := gg.NewContext(w, h)

	// Opaque white background.
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	titleFace, err := fontFace(gobold.TTF, 17*cardScale)
	if err != nil {
		return nil, err
	}
	labelFace, err := fontFace(goregular.TTF, 9*cardScale)
	if err != nil {
		return nil, err
	}
	valueFace, err := fontFace(gobold.TTF, 11*cardScale)
	if err != nil {
		return nil, err
	}
	footFace, err := fontFace(goregular.TTF, 8*cardScale)
	if err != nil {
		return nil, err
	}

	// Header band.
	bandH := float64(48 * cardScale)
	dc.SetRGB(0.80, 0.29, 0.12)
	dc.DrawRectangle(0, 0, float64(w), bandH)
	dc.Fill()
	dc.SetFontFace(titleFace)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(OrgName, float64(w)/2, bandH*0.38, 0.5, 0.5)
	dc.SetFontFace(labelFace)
	dc.DrawStringAnchored("MEMBER IDENTITY CARD", float64(w)/2, bandH*0.78, 0.5, 0.5)

	// Portrait, fitted to its box.
	portrait := data.Portrait
	if portrait == nil {
		portrait = InitialsAvatar(data.FullName, PortraitWidth*cardScale, PortraitHeight*cardScale)
	}
	pw := PortraitWidth * cardScale
	ph := PortraitHeight * cardScale
	fitted := imaging.Fill(portrait, pw, ph, imaging.Center, imaging.Lanczos)
	px := 16 * cardScale
	py := int(bandH) + 16*cardScale
	dc.DrawImage(fitted, px, py)
	dc.SetRGB(0.75, 0.75, 0.75)
	dc.SetLineWidth(cardScale)
	dc.DrawRectangle(float64(px), float64(py), float64(pw), float64(ph))
	dc.Stroke()

	// Member fields.
	rows := []struct{ label, value string }{
		{"Name", data.FullName},
		{"Father's Name", data.FatherName},
		{"Phone", data.Phone},
		{"Mandal", data.Mandal},
		{"District", fmt.Sprintf("%s, %s", data.District, data.State)},
		{"Member ID", data.MembershipID},
	}
	x := float64(px + pw + 18*cardScale)
	y := float64(py + 6*cardScale)
	lineH := float64(27 * cardScale)
	for _, row := range rows {
		dc.SetFontFace(labelFace)
		dc.SetRGB(0.45, 0.45, 0.45)
		dc.DrawStringAnchored(strings.ToUpper(row.label), x, y, 0, 0.5)
		dc.SetFontFace(valueFace)
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(row.value, x, y+float64(11*cardScale), 0, 0.5)
		y += lineH
	}

	// QR code of the membership ID, bottom-right.
	qrCode, err := qr.Encode(data.MembershipID, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR: %w", err)
	}
	qrSize := 56 * cardScale
	qrCode, err = barcode.Scale(qrCode, qrSize, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to scale QR: %w", err)
	}
	dc.DrawImage(qrCode, w-qrSize-12*cardScale, h-qrSize-20*cardScale)

	// Footer.
	dc.SetFontFace(footFace)
	dc.SetRGB(0.45, 0.45, 0.45)
	dc.DrawStringAnchored("Issued on "+data.IssuedOn, float64(16*cardScale), float64(h-12*cardScale), 0, 0.5)
	dc.DrawStringAnchored(data.MembershipID, float64(w-12*cardScale), float64(h-8*cardScale), 1, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode card PNG: %w", err)
	}
	return buf.Bytes(), nil
}
