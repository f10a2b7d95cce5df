package item

// Item is a scraped record routed through the pipeline chain.
// Concrete types are *Product and *ProductImage.
type Item any

// PriceWithVAT holds the consumer-facing price block of a product.
type PriceWithVAT struct {
	SalePriceWithVAT     string  `json:"sale_price_with_vat"`
	DiscountPriceWithVAT string  `json:"discount_price_with_vat"`
	DiscountPercentage   *string `json:"discount_percentage"`
}

// ProfessionalPrice holds the pre-VAT price block of a product.
// PricePerUnit is only present when the rendered discount price differs
// from the stored professional discount price.
type ProfessionalPrice struct {
	ProfessionalSalePrice     string  `json:"professional_sale_price"`
	ProfessionalDiscountPrice string  `json:"professional_discount_price"`
	DiscountPercentage        *string `json:"discount_percentage"`
	PricePerUnit              *string `json:"price_per_unit,omitempty"`
}

// Product is one normalized catalog entry. Nullable fields are pointers
// so absent upstream values serialize as JSON null.
type Product struct {
	SKU                string             `json:"sku"`
	DateSaleStart      *string            `json:"date_sale_start"`
	DateSaleEnd        *string            `json:"date_sale_end"`
	ProductCategory    string             `json:"product_category"`
	Subcategory1       *string            `json:"subcategory1"`
	Subcategory2       *string            `json:"subcategory2"`
	ImageURLs          []string           `json:"image_urls"`
	ProductName        string             `json:"product_name"`
	ProductURL         string             `json:"product_url"`
	PackageSize        *string            `json:"package_size"`
	PriceWithVAT       *PriceWithVAT      `json:"price_with_vat"`
	ProfessionalPrice  *ProfessionalPrice `json:"professional_price"`
	AvailableLocations *string            `json:"available_locations"`
}

// ProductImage is one fetched product image. Content is dropped after
// the upload so the payload is not retained in memory.
type ProductImage struct {
	ImageURL    string `json:"image_url"`
	ImageID     string `json:"image_id"`
	ImageType   string `json:"image_type"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	Content     []byte `json:"-"`
}
