package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// CR80 physical card dimensions in millimeters, landscape.
const (
	cardPageWidthMM  = 85.6
	cardPageHeightMM = 54.0
)

// GenerateIDCardPDF wraps an already-rendered card PNG in a single-page PDF
// sized to a physical CR80 card, with the image scaled to the page width.
func GenerateIDCardPDF(cardPNG []byte) ([]byte, error) {
	if len(cardPNG) == 0 {
		return nil, fmt.Errorf("no card image to embed")
	}

	cfg := config.NewBuilder().
		WithDimensions(cardPageWidthMM, cardPageHeightMM).
		WithLeftMargin(0).
		WithTopMargin(0).
		WithRightMargin(0).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		image.NewFromBytesRow(cardPageHeightMM, cardPNG, extension.Png, props.Rect{
			Center:  true,
			Percent: 100,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID card PDF: %w", err)
	}

	return doc.GetBytes(), nil
}
