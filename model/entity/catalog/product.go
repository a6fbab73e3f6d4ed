package catalog

import (
	"time"

	"gorm.io/datatypes"
)

// Product statuses. Draft products never appear in storefront search.
const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Product is a catalog item. Images is a JSON array whose elements are either
// bare URL strings or {url, altText} objects (both shapes exist in imported
// data, so readers must handle both).
type Product struct {
	ID                uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title             string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	SKU               string         `gorm:"column:sku;type:varchar(64);not null;uniqueIndex" json:"sku"`
	BrandName         string         `gorm:"column:brand_name;type:varchar(128)" json:"brandName"`
	Description       string         `gorm:"column:description;type:text" json:"description"`
	Images            datatypes.JSON `gorm:"column:images" json:"images"`
	RegularPrice      float64        `gorm:"column:regular_price;type:decimal(12,2);not null;default:0" json:"regularPrice"`
	SalePrice         *float64       `gorm:"column:sale_price;type:decimal(12,2)" json:"salePrice,omitempty"`
	StockQuantity     int            `gorm:"column:stock_quantity;not null;default:0" json:"stockQuantity"`
	IsPublished       bool           `gorm:"column:is_published;not null;default:false" json:"isPublished"`
	Status            string         `gorm:"column:status;type:varchar(16);not null;default:draft" json:"status"`
	SizeType          string         `gorm:"column:size_type;type:varchar(32)" json:"sizeType"`
	HasTenDollarOffer bool           `gorm:"column:has_ten_dollar_offer;not null;default:false" json:"hasTenDollarOffer"`

	CategoryID       *uint     `gorm:"column:category_id;index" json:"categoryId,omitempty"`
	SubCategoryID    *uint     `gorm:"column:sub_category_id;index" json:"subCategoryId,omitempty"`
	ParentCategoryID *uint     `gorm:"column:parent_category_id;index" json:"parentCategoryId,omitempty"`
	Category         *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategory      *Category `gorm:"foreignKey:SubCategoryID" json:"subCategory,omitempty"`
	ParentCategory   *Category `gorm:"foreignKey:ParentCategoryID" json:"parentCategory,omitempty"`

	Variants []Variant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

// Variant is a sellable variation of a Product. A product exclusively owns
// its variants; variant stock rolls up into the product's displayed quantity.
type Variant struct {
	ID            uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID     uint   `gorm:"column:product_id;not null;index" json:"productId"`
	SKU           string `gorm:"column:sku;type:varchar(64)" json:"sku"`
	Size          string `gorm:"column:size;type:varchar(32)" json:"size"`
	StockQuantity int    `gorm:"column:stock_quantity;not null;default:0" json:"stockQuantity"`
}

func (Variant) TableName() string {
	return "product_variants"
}
