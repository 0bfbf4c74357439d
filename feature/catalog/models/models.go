package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssetType values for DigitalAsset.Type.
const (
	AssetTypeImage    = "image"
	AssetTypeDocument = "document"
)

// Product is the canonical catalog entry produced by normalizing a raw
// supplier record. The internal id is generated once and stays stable across
// re-ingestions; external_id and product_code are supplier-provided alternate
// keys, either of which may be absent.
type Product struct {
	ID string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`

	// Identity. Matching is always scoped by source; a product_code collision
	// between two suppliers must never merge their products.
	Source      string  `gorm:"column:source;type:varchar(32);not null;index:idx_products_source_external,priority:1;index:idx_products_source_code,priority:1" json:"source"`
	ExternalID  *string `gorm:"column:external_id;type:varchar(64);index:idx_products_source_external,priority:2" json:"external_id"`
	ProductCode *string `gorm:"column:product_code;type:varchar(64);index:idx_products_source_code,priority:2" json:"product_code"`

	// Name is never empty; the normalizer substitutes a deterministic
	// fallback when no name-bearing field exists in the source data.
	Name        string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description *string `gorm:"column:description;type:text" json:"description"`
	Brand       *string `gorm:"column:brand;type:varchar(128)" json:"brand"`

	Category    *string `gorm:"column:category;type:varchar(128)" json:"category"`
	SubCategory *string `gorm:"column:sub_category;type:varchar(128)" json:"sub_category"`
	Material    *string `gorm:"column:material;type:varchar(255)" json:"material"`
	Color       *string `gorm:"column:color;type:varchar(64)" json:"color"`

	// Midocean master fields.
	MasterCode             *string `gorm:"column:master_code;type:varchar(64)" json:"master_code"`
	MasterID               *string `gorm:"column:master_id;type:varchar(64)" json:"master_id"`
	TypeOfProducts         *string `gorm:"column:type_of_products;type:varchar(64)" json:"type_of_products"`
	CommodityCode          *string `gorm:"column:commodity_code;type:varchar(64)" json:"commodity_code"`
	NumberOfPrintPositions *string `gorm:"column:number_of_print_positions;type:varchar(16)" json:"number_of_print_positions"`
	ProductName            *string `gorm:"column:product_name;type:varchar(255)" json:"product_name"`
	CategoryCode           *string `gorm:"column:category_code;type:varchar(64)" json:"category_code"`
	ProductClass           *string `gorm:"column:product_class;type:varchar(128)" json:"product_class"`

	// Physical dimensions plus their unit suffix fields as shipped by the feed.
	Length     *float64 `gorm:"column:length" json:"length"`
	LengthUnit *string  `gorm:"column:length_unit;type:varchar(8)" json:"length_unit"`
	Width      *float64 `gorm:"column:width" json:"width"`
	WidthUnit  *string  `gorm:"column:width_unit;type:varchar(8)" json:"width_unit"`
	Height     *float64 `gorm:"column:height" json:"height"`
	HeightUnit *string  `gorm:"column:height_unit;type:varchar(8)" json:"height_unit"`
	Dimensions *string  `gorm:"column:dimensions;type:varchar(64)" json:"dimensions"`
	Volume     *float64 `gorm:"column:volume" json:"volume"`
	VolumeUnit *string  `gorm:"column:volume_unit;type:varchar(8)" json:"volume_unit"`

	GrossWeight     *float64 `gorm:"column:gross_weight" json:"gross_weight"`
	GrossWeightUnit *string  `gorm:"column:gross_weight_unit;type:varchar(8)" json:"gross_weight_unit"`
	NetWeight       *float64 `gorm:"column:net_weight" json:"net_weight"`
	NetWeightUnit   *string  `gorm:"column:net_weight_unit;type:varchar(8)" json:"net_weight_unit"`
	// Weight mirrors net_weight for older readers of the table.
	Weight *float64 `gorm:"column:weight" json:"weight"`

	// Carton-level packaging metrics.
	InnerCartonQuantity   *int     `gorm:"column:inner_carton_quantity" json:"inner_carton_quantity"`
	OuterCartonQuantity   *int     `gorm:"column:outer_carton_quantity" json:"outer_carton_quantity"`
	CartonLength          *float64 `gorm:"column:carton_length" json:"carton_length"`
	CartonLengthUnit      *string  `gorm:"column:carton_length_unit;type:varchar(8)" json:"carton_length_unit"`
	CartonWidth           *float64 `gorm:"column:carton_width" json:"carton_width"`
	CartonWidthUnit       *string  `gorm:"column:carton_width_unit;type:varchar(8)" json:"carton_width_unit"`
	CartonHeight          *float64 `gorm:"column:carton_height" json:"carton_height"`
	CartonHeightUnit      *string  `gorm:"column:carton_height_unit;type:varchar(8)" json:"carton_height_unit"`
	CartonVolume          *float64 `gorm:"column:carton_volume" json:"carton_volume"`
	CartonVolumeUnit      *string  `gorm:"column:carton_volume_unit;type:varchar(8)" json:"carton_volume_unit"`
	CartonGrossWeight     *float64 `gorm:"column:carton_gross_weight" json:"carton_gross_weight"`
	CartonGrossWeightUnit *string  `gorm:"column:carton_gross_weight_unit;type:varchar(8)" json:"carton_gross_weight_unit"`

	ShortDescription       *string `gorm:"column:short_description;type:text" json:"short_description"`
	LongDescription        *string `gorm:"column:long_description;type:text" json:"long_description"`
	PackagingAfterPrinting *string `gorm:"column:packaging_after_printing;type:varchar(128)" json:"packaging_after_printing"`
	Printable              *string `gorm:"column:printable;type:varchar(8)" json:"printable"`

	CountryOfOrigin *string  `gorm:"column:country_of_origin;type:varchar(64)" json:"country_of_origin"`
	EanCode         *string  `gorm:"column:ean_code;type:varchar(32)" json:"ean_code"`
	Price           *float64 `gorm:"column:price" json:"price"`
	ImageURL        *string  `gorm:"column:image_url;type:varchar(512)" json:"image_url"`

	// Timestamp is the product timestamp reported by the feed, not ours.
	Timestamp *time.Time `gorm:"column:timestamp" json:"timestamp"`

	// RawData preserves the full original payload (size-capped) for audit
	// and for later re-extraction when normalized fields prove incomplete.
	RawData datatypes.JSON `gorm:"column:raw_data" json:"raw_data,omitempty"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Assets   []DigitalAsset   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"assets,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns the stable internal id.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ProductVariant is a specific SKU/color/size instance of a Product.
// Variants are owned by their product and fully replaced on every
// re-ingestion of the parent.
type ProductVariant struct {
	ID        string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ProductID string `gorm:"column:product_id;type:varchar(36);not null;index" json:"product_id"`

	// VariantID is the supplier-assigned identifier. A variant without one is
	// never persisted; SKU alone is not sufficient.
	VariantID string  `gorm:"column:variant_id;type:varchar(64);not null;index" json:"variant_id"`
	SKU       *string `gorm:"column:sku;type:varchar(64)" json:"sku"`

	ReleaseDate      *time.Time `gorm:"column:release_date" json:"release_date"`
	DiscontinuedDate *time.Time `gorm:"column:discontinued_date" json:"discontinued_date"`

	ProductPropositionCategory *string `gorm:"column:product_proposition_category;type:varchar(128)" json:"product_proposition_category"`
	CategoryLevel1             *string `gorm:"column:category_level1;type:varchar(128)" json:"category_level1"`
	CategoryLevel2             *string `gorm:"column:category_level2;type:varchar(128)" json:"category_level2"`
	CategoryLevel3             *string `gorm:"column:category_level3;type:varchar(128)" json:"category_level3"`

	ColorDescription *string `gorm:"column:color_description;type:varchar(64)" json:"color_description"`
	ColorGroup       *string `gorm:"column:color_group;type:varchar(64)" json:"color_group"`
	ColorCode        *string `gorm:"column:color_code;type:varchar(32)" json:"color_code"`
	PMSColor         *string `gorm:"column:pms_color;type:varchar(32)" json:"pms_color"`

	PlcStatus            *string `gorm:"column:plc_status;type:varchar(16)" json:"plc_status"`
	PlcStatusDescription *string `gorm:"column:plc_status_description;type:varchar(64)" json:"plc_status_description"`

	GTIN *string `gorm:"column:gtin;type:varchar(32)" json:"gtin"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (ProductVariant) TableName() string {
	return "product_variants"
}

// BeforeCreate assigns the variant id.
func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// DigitalAsset is an image or document attached to a variant or, for
// master-level assets and orphans, directly to the product.
type DigitalAsset struct {
	ID        string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ProductID string `gorm:"column:product_id;type:varchar(36);not null;index" json:"product_id"`
	// VariantID references product_variants.id once resolved. Nil for master
	// assets and for orphans whose source variant never materialized.
	VariantID *string `gorm:"column:variant_id;type:varchar(36);index" json:"variant_id"`

	// URL is required; assets without one are dropped before persistence.
	URL        string  `gorm:"column:url;type:varchar(512);not null" json:"url"`
	URLHighRes *string `gorm:"column:url_high_res;type:varchar(512)" json:"url_high_res"`
	Type       *string `gorm:"column:type;type:varchar(16)" json:"type"`
	Subtype    *string `gorm:"column:subtype;type:varchar(64)" json:"subtype"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name.
func (DigitalAsset) TableName() string {
	return "digital_assets"
}

// BeforeCreate assigns the asset id.
func (a *DigitalAsset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// All returns every catalog model, in migration order.
func All() []any {
	return []any{&Product{}, &ProductVariant{}, &DigitalAsset{}}
}
