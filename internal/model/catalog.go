package model

import "github.com/shopspring/decimal"

// Product is a catalogue item as served by the backend.
type Product struct {
	ID          int64           `json:"productId"`
	Name        string          `json:"productName"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	IsActive    bool            `json:"isActive"`
	Images      []Image         `json:"images,omitempty"`
}

// PrimaryImageURL returns the primary image, or the first one, or "".
func (p Product) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// Image is a product or variant picture.
type Image struct {
	ID        int64  `json:"imageId"`
	ProductID int64  `json:"productId,omitempty"`
	VariantID *int64 `json:"variantId,omitempty"`
	URL       string `json:"imageUrl"`
	IsPrimary bool   `json:"isPrimary"`
}

// Variant is a purchasable SKU of a product, distinguished by colour and size.
type Variant struct {
	ID            int64           `json:"variantId"`
	ProductID     int64           `json:"productId"`
	Color         string          `json:"color,omitempty"`
	Size          string          `json:"size,omitempty"`
	StockQuantity int             `json:"stockQuantity"`
	Price         decimal.Decimal `json:"price"`
	SKU           string          `json:"sku,omitempty"`
	IsActive      bool            `json:"isActive"`
	Product       *Product        `json:"product,omitempty"`
}

// Page is the backend's paginated list envelope.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}
