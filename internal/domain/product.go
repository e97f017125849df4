package domain

import "time"

type ProductCategory string

const (
	ProductCategoryNormal   ProductCategory = "normal"
	ProductCategoryDesigner ProductCategory = "designer"
	// ProductCategoryCustom marks the blank base product that customer
	// custom designs render onto.
	ProductCategoryCustom ProductCategory = "custom"
)

type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type Product struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	PriceCents          int64           `json:"price_cents"`
	OriginalPriceCents  *int64          `json:"original_price_cents,omitempty"`
	Category            ProductCategory `json:"category"`
	Description         string          `json:"description"`
	Image               string          `json:"image"`
	Images              []string        `json:"images,omitempty"`
	Sizes               []string        `json:"sizes"`
	Colors              []Color         `json:"colors"`
	// DesignerID is nil for normal marketplace products; only designer
	// products generate commission.
	DesignerID    *int64    `json:"designer_id,omitempty"`
	DesignerName  string    `json:"designer_name,omitempty"`
	IsFeatured    bool      `json:"is_featured"`
	IsNew         bool      `json:"is_new"`
	IsActive      bool      `json:"is_active"`
	StockQuantity int32     `json:"stock_quantity"`
	CreatedOn     time.Time `json:"created_on"`
}
