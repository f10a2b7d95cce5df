package aligro

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"storescrapers/catalogworker/internal/engine"
	"storescrapers/catalogworker/internal/item"
	"storescrapers/catalogworker/pkg/errors"
)

const categoryPageURL = "%s?article_filter%%5BpaginationItems%%5D=192&page=%d"

var (
	xhrHeaders = map[string]string{
		"X-Requested-With": "XMLHttpRequest",
	}

	// "Aktionen von 01.01.2024 bis 07.01.2024"
	saleDateSeparator = regexp.MustCompile(`\s?bis\s?`)
)

// traversalContext is the immutable field bag inherited from a
// sub-category landing page by every paginated request of that branch.
// It is passed by value so no page can mutate a sibling's view.
type traversalContext struct {
	dateSaleStart   *string
	dateSaleEnd     *string
	productCategory string
	subcategory1    *string
	url             string
	pageNo          int
}

// parseLanding reads the breadcrumb trail of a sub-category landing
// page and issues the first paginated request. The trail must have at
// least 2 entries; shorter trails are a precondition violation and
// terminate this branch.
func (s *Scraper) parseLanding(resp *engine.Response) (*engine.ParseResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, errors.NewParsing(s.Name(), "failed to parse landing page", err)
	}

	var breadcrumbs []string
	doc.Find("nav#navBreadcrumb li.breadcrumb-item").Each(func(_ int, sel *goquery.Selection) {
		breadcrumbs = append(breadcrumbs, normalizeSpace(sel.Text()))
	})

	var dateSaleStart, dateSaleEnd *string
	if len(breadcrumbs) > 0 && strings.Contains(breadcrumbs[0], "Aktionen von") {
		// The marker guards against reading sale dates from an
		// unrelated first breadcrumb.
		trail := strings.ReplaceAll(breadcrumbs[0], "Aktionen von ", "")
		parts := saleDateSeparator.Split(trail, 2)
		if len(parts) == 2 {
			dateSaleStart = ptr(parts[0])
			dateSaleEnd = ptr(parts[1])
		}
	}

	tc := traversalContext{
		dateSaleStart:   dateSaleStart,
		dateSaleEnd:     dateSaleEnd,
		productCategory: breadcrumbs[1],
		url:             resp.URL,
		pageNo:          1,
	}
	if len(breadcrumbs) > 2 {
		tc.subcategory1 = ptr(breadcrumbs[2])
	}

	return &engine.ParseResult{
		Requests: []*engine.Request{s.pageRequest(tc, 1)},
	}, nil
}

// pageRequest builds the paginated-API request for one page of a
// sub-category traversal
func (s *Scraper) pageRequest(tc traversalContext, pageNo int) *engine.Request {
	tc.pageNo = pageNo
	return &engine.Request{
		URL:     fmt.Sprintf(categoryPageURL, tc.url, pageNo),
		Headers: xhrHeaders,
		Parse: func(resp *engine.Response) (*engine.ParseResult, error) {
			return s.parsePage(resp, tc)
		},
	}
}

// parsePage transforms one page of paginated JSON results into product
// records, image requests, and requests for the remaining pages.
// An invalid body or an empty item list is a normal terminal condition
// for this branch, not an error.
func (s *Scraper) parsePage(resp *engine.Response, tc traversalContext) (*engine.ParseResult, error) {
	var body map[string]any
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		s.log.Error().Str("url", resp.URL).Msg("Product response is invalid")
		return nil, nil
	}

	pagination := digMap(body, "pagination")
	if pagination == nil {
		s.log.Error().Str("url", resp.URL).Msg("Product response is invalid")
		return nil, nil
	}

	allItems := digList(body, "pagination", "items")
	if len(allItems) == 0 {
		s.log.Error().Str("url", resp.URL).Msg("Items is null or empty list")
		return nil, nil
	}

	result := s.parseProducts(allItems, tc)

	itemsPerPage, okPer := digFloat(body, "pagination", "items_per_page")
	totalItems, okTotal := digFloat(body, "pagination", "total_items")
	if !okPer || !okTotal || itemsPerPage <= 0 {
		s.log.Error().Str("url", resp.URL).Msg("Pagination counters are missing")
		return result, nil
	}

	totalPages := int(math.Ceil(totalItems / itemsPerPage))
	if totalPages == 1 {
		s.log.Info().Str("url", resp.URL).Msg("Only 1 page of results found")
		return result, nil
	}

	// The last page index is deliberately left out pending confirmation
	// of the API's page-count semantics. Duplicate page requests across
	// sibling pages are dropped by the engine.
	for pageNo := 2; pageNo < totalPages; pageNo++ {
		pageURL := fmt.Sprintf(categoryPageURL, tc.url, pageNo)
		s.log.Info().Str("url", pageURL).Msg("Iterating over page")
		result.Requests = append(result.Requests, s.pageRequest(tc, pageNo))
	}
	return result, nil
}

// parseProducts extracts one product record and one image request per
// listing item. Every field is independently nullable; only a missing
// SKU disqualifies an item.
func (s *Scraper) parseProducts(products []any, tc traversalContext) *engine.ParseResult {
	s.log.Info().Int("total_products", len(products)).Msg("Parsing products")

	result := &engine.ParseResult{}
	for _, raw := range products {
		product, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		sku, ok := digString(product, "sKU")
		if !ok || sku == "" {
			s.log.Error().Msg("Product has no SKU, skipping")
			continue
		}

		itemCategory, hasItemCategory := digString(product, "article", "articleGroup", "translations", "de", "wording")
		subcategory1 := tc.subcategory1
		var subcategory2 *string
		if subcategory1 == nil {
			if hasItemCategory {
				subcategory1 = ptr(itemCategory)
			}
		} else if hasItemCategory {
			subcategory2 = ptr(itemCategory)
		}

		productName, _ := digString(product, "translations", "de", "advertisingText")
		if brand, _ := digString(product, "translations", "de", "brand"); brand != "" {
			productName = brand + " " + productName
		}
		if origin, _ := digString(product, "translations", "de", "origin"); origin != "" {
			productName += ", " + origin
		}
		if designation, _ := digString(product, "translations", "de", "additionalDesignation"); designation != "" {
			productName += ", " + designation
		}

		var packageSize *string
		if label, _ := digString(product, "translations", "de", "quantityLabel"); label != "" {
			packageSize = ptr(label)
		} else if wording, ok := digString(product, "quantityWording"); ok {
			packageSize = ptr(wording)
		}

		priceWithVAT, professionalPrice := s.parsePricing(product)

		var availableLocations *string
		if label, ok := digString(product, "availabilityLabel"); ok {
			availableLocations = ptr(label)
		}

		imageURL, _ := digString(product, "images", "main")
		productURL, _ := digString(product, "href", "self")

		result.Items = append(result.Items, &item.Product{
			SKU:                sku,
			DateSaleStart:      tc.dateSaleStart,
			DateSaleEnd:        tc.dateSaleEnd,
			ProductCategory:    tc.productCategory,
			Subcategory1:       subcategory1,
			Subcategory2:       subcategory2,
			ImageURLs:          []string{imageURL},
			ProductName:        productName,
			ProductURL:         productURL,
			PackageSize:        packageSize,
			PriceWithVAT:       priceWithVAT,
			ProfessionalPrice:  professionalPrice,
			AvailableLocations: availableLocations,
		})

		if imageURL != "" {
			result.Requests = append(result.Requests, s.imageRequest(imageURL, sku, productName))
		}
	}
	return result
}

// parsePricing reads the first pricing-detail entry and renders the
// consumer (with VAT) and professional (pre-VAT) price blocks
func (s *Scraper) parsePricing(product map[string]any) (*item.PriceWithVAT, *item.ProfessionalPrice) {
	detailPrices := digList(product, "articleDetailPrices")
	if len(detailPrices) == 0 {
		return nil, nil
	}
	pricing, ok := detailPrices[0].(map[string]any)
	if !ok {
		return nil, nil
	}

	var priceWithVAT *item.PriceWithVAT
	if salesTTC, okSale := digFloat(pricing, "salesPriceTTC"); okSale {
		if discountTTC, okDiscount := digFloat(pricing, "discountPriceTTC"); okDiscount {
			priceWithVAT = &item.PriceWithVAT{
				SalePriceWithVAT:     formatPrice(salesTTC),
				DiscountPriceWithVAT: formatPrice(discountTTC),
				DiscountPercentage:   discountPercentage(pricing, "discountRatePro"),
			}
		}
	}

	var professionalPrice *item.ProfessionalPrice
	if salesHT, okSale := digFloat(pricing, "salesPriceHT"); okSale {
		if discountHT, okDiscount := digFloat(pricing, "discountPriceHT"); okDiscount {
			professionalPrice = &item.ProfessionalPrice{
				ProfessionalSalePrice:     formatPrice(salesHT),
				ProfessionalDiscountPrice: formatPrice(discountHT),
				DiscountPercentage:        discountPercentage(pricing, "discountRatePrivate"),
			}

			// The unit price source is the discounted pre-VAT price;
			// it is only appended when its rendering differs from the
			// stored discount price string.
			if unitPrice := discountHT; unitPrice != 0 &&
				formatPrice(unitPrice) != professionalPrice.ProfessionalDiscountPrice {
				unit, _ := digString(product, "quantityUnitBase", "translations", "de", "singular")
				professionalPrice.PricePerUnit = ptr(formatPrice(unitPrice) + " / " + unit)
			}
		}
	}

	return priceWithVAT, professionalPrice
}

// discountPercentage renders a discount rate fraction as a whole-number
// percentage string, or nil when no rate is present
func discountPercentage(pricing map[string]any, key string) *string {
	rate, ok := digFloat(pricing, key)
	if !ok || rate == 0 {
		return nil
	}
	return ptr(strconv.Itoa(int(rate*100)) + "%")
}

// formatPrice renders a price to 2 decimal places
func formatPrice(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
