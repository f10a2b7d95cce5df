package aligro

import (
	"regexp"
	"strings"

	"storescrapers/catalogworker/helpers"
	"storescrapers/catalogworker/internal/engine"
	"storescrapers/catalogworker/internal/item"
	"storescrapers/catalogworker/pkg/errors"
)

// Recognized raster formats, matched case-sensitively at the end of
// the image file name.
var imageTypePattern = regexp.MustCompile(`\.(jpg|jpeg|png)$`)

// imageRequest builds the fetch request for one product image,
// carrying the sku and product name forward
func (s *Scraper) imageRequest(imageURL, sku, productName string) *engine.Request {
	return &engine.Request{
		URL: imageURL,
		Parse: func(resp *engine.Response) (*engine.ParseResult, error) {
			return s.parseImage(resp, sku, productName)
		},
	}
}

// parseImage finalizes one fetched image into a ProductImage record.
// An unrecognized extension is fatal for this image only.
func (s *Scraper) parseImage(resp *engine.Response, sku, productName string) (*engine.ParseResult, error) {
	imageID := helpers.LastPathSegment(resp.URL)
	match := imageTypePattern.FindStringSubmatch(imageID)
	if match == nil {
		return nil, errors.NewImage(s.Name(), "unable to find type of the image: "+resp.URL, nil)
	}

	imageType := match[1]
	imageID = strings.TrimSuffix(imageID, "."+imageType)

	return &engine.ParseResult{
		Items: []item.Item{&item.ProductImage{
			ImageURL:    resp.URL,
			ImageID:     imageID,
			ImageType:   imageType,
			SKU:         sku,
			ProductName: productName,
			Content:     resp.Body,
		}},
	}, nil
}
