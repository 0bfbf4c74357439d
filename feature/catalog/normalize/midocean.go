package normalize

import (
	"encoding/json"

	"catalog-sync/core/server"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"
)

// Key chains for the midocean feed. Midocean has shipped snake_case,
// camelCase, and PascalCase spellings of the same fields across gateway
// revisions; each chain is tried in priority order and the first present,
// non-empty value wins.
var (
	midoceanNameChain = []string{
		"product_name", "productName", "ProductName",
		"name", "Name",
		"title", "Title",
		"shortDescription", "short_description", "ShortDescription",
		"displayName", "DisplayName",
	}
	midoceanCodeChain       = []string{"productCode", "ProductCode", "code", "Code", "sku", "SKU"}
	midoceanExternalIDChain = []string{"id", "Id", "productId", "ProductId", "externalId", "ExternalId"}
)

// pick returns the first present, non-nil, non-empty-string value among the
// given keys.
func pick(m map[string]any, keys ...string) any {
	for _, key := range keys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v
	}
	return nil
}

// pickString is pick constrained to scalar values rendered as strings.
func pickString(m map[string]any, keys ...string) *string {
	return utils.StringifyOrNil(pick(m, keys...))
}

// NormalizeMidocean converts one raw midocean record into the canonical
// triple. It never fails: an unparseable record degrades to a placeholder
// product carrying the raw payload.
func NormalizeMidocean(raw json.RawMessage) Canonical {
	var notes []string

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		notes = append(notes, "record is not a JSON object")
		m = map[string]any{}
	}

	masterCode := pickString(m, "master_code", "masterCode")
	masterID := pickString(m, "master_id", "masterId", "masterID")

	productCode := masterCode
	if productCode == nil {
		productCode = pickString(m, midoceanCodeChain...)
	}
	externalID := masterID
	if externalID == nil {
		externalID = pickString(m, midoceanExternalIDChain...)
	}

	name := resolveName(pickString(m, midoceanNameChain...), productCode, externalID, "Midocean", &notes)

	netWeight := utils.FloatOrNil(pick(m, "net_weight", "netWeight"))

	product := models.Product{
		Source:      server.SupplierMidocean,
		Name:        name,
		Description: pickString(m, "long_description", "longDescription", "description"),
		Brand:       pickString(m, "brand"),
		ProductCode: productCode,
		ExternalID:  externalID,

		MasterCode:             masterCode,
		MasterID:               masterID,
		TypeOfProducts:         pickString(m, "type_of_products", "typeOfProducts"),
		CommodityCode:          pickString(m, "commodity_code", "commodityCode"),
		NumberOfPrintPositions: pickString(m, "number_of_print_positions", "numberOfPrintPositions"),
		ProductName:            pickString(m, "product_name", "productName"),
		CategoryCode:           pickString(m, "category_code", "categoryCode"),
		ProductClass:           pickString(m, "product_class", "productClass"),

		Length:     utils.FloatOrNil(pick(m, "length")),
		LengthUnit: pickString(m, "length_unit", "lengthUnit"),
		Width:      utils.FloatOrNil(pick(m, "width")),
		WidthUnit:  pickString(m, "width_unit", "widthUnit"),
		Height:     utils.FloatOrNil(pick(m, "height")),
		HeightUnit: pickString(m, "height_unit", "heightUnit"),
		Dimensions: pickString(m, "dimensions"),
		Volume:     utils.FloatOrNil(pick(m, "volume")),
		VolumeUnit: pickString(m, "volume_unit", "volumeUnit"),

		GrossWeight:     utils.FloatOrNil(pick(m, "gross_weight", "grossWeight")),
		GrossWeightUnit: pickString(m, "gross_weight_unit", "grossWeightUnit"),
		NetWeight:       netWeight,
		NetWeightUnit:   pickString(m, "net_weight_unit", "netWeightUnit"),
		// weight mirrors net_weight for older readers
		Weight: netWeight,

		InnerCartonQuantity:   utils.IntOrNil(pick(m, "inner_carton_quantity", "innerCartonQuantity")),
		OuterCartonQuantity:   utils.IntOrNil(pick(m, "outer_carton_quantity", "outerCartonQuantity")),
		CartonLength:          utils.FloatOrNil(pick(m, "carton_length", "cartonLength")),
		CartonLengthUnit:      pickString(m, "carton_length_unit", "cartonLengthUnit"),
		CartonWidth:           utils.FloatOrNil(pick(m, "carton_width", "cartonWidth")),
		CartonWidthUnit:       pickString(m, "carton_width_unit", "cartonWidthUnit"),
		CartonHeight:          utils.FloatOrNil(pick(m, "carton_height", "cartonHeight")),
		CartonHeightUnit:      pickString(m, "carton_height_unit", "cartonHeightUnit"),
		CartonVolume:          utils.FloatOrNil(pick(m, "carton_volume", "cartonVolume")),
		CartonVolumeUnit:      pickString(m, "carton_volume_unit", "cartonVolumeUnit"),
		CartonGrossWeight:     utils.FloatOrNil(pick(m, "carton_gross_weight", "cartonGrossWeight")),
		CartonGrossWeightUnit: pickString(m, "carton_gross_weight_unit", "cartonGrossWeightUnit"),

		ShortDescription:       pickString(m, "short_description", "shortDescription"),
		LongDescription:        pickString(m, "long_description", "longDescription"),
		Material:               pickString(m, "material"),
		PackagingAfterPrinting: pickString(m, "packaging_after_printing", "packagingAfterPrinting"),
		Printable:              pickString(m, "printable"),
		CountryOfOrigin:        pickString(m, "country_of_origin", "countryOfOrigin"),

		Timestamp: utils.TimeOrNil(pick(m, "timestamp")),
		RawData:   rawPayload(raw, &notes),
	}

	variants, assets := extractMidoceanChildren(m)

	// Main image: the front picture of the first variant, falling back to a
	// product-level image field.
	if img := frontImage(assets); img != nil {
		product.ImageURL = img
	} else {
		product.ImageURL = pickString(m, "imageUrl", "image")
	}

	return Canonical{
		Product:  product,
		Variants: variants,
		Assets:   assets,
		Notes:    notes,
	}
}

// extractMidoceanChildren walks the nested variants[] list, extracting each
// variant's field set and flattening its digital_assets[] into one asset
// list tagged with the source variant identifier. Master-level assets
// (documents, certification sheets) come last with no variant tag.
func extractMidoceanChildren(m map[string]any) ([]models.ProductVariant, []Asset) {
	var variants []models.ProductVariant
	var assets []Asset

	rawVariants, _ := m["variants"].([]any)
	for _, rv := range rawVariants {
		vm, ok := rv.(map[string]any)
		if !ok {
			continue
		}

		sourceID := pickString(vm, "variant_id", "variantId")
		variant := models.ProductVariant{
			SKU:              pickString(vm, "sku", "SKU"),
			ReleaseDate:      utils.TimeOrNil(pick(vm, "release_date", "releaseDate")),
			DiscontinuedDate: utils.TimeOrNil(pick(vm, "discontinued_date", "discontinuedDate")),

			ProductPropositionCategory: pickString(vm, "product_proposition_category", "productPropositionCategory"),
			CategoryLevel1:             pickString(vm, "category_level1", "categoryLevel1"),
			CategoryLevel2:             pickString(vm, "category_level2", "categoryLevel2"),
			CategoryLevel3:             pickString(vm, "category_level3", "categoryLevel3"),

			ColorDescription: pickString(vm, "color_description", "colorDescription"),
			ColorGroup:       pickString(vm, "color_group", "colorGroup"),
			ColorCode:        pickString(vm, "color_code", "colorCode"),
			PMSColor:         pickString(vm, "pms_color", "pmsColor"),

			PlcStatus:            pickString(vm, "plc_status", "plcStatus"),
			PlcStatusDescription: pickString(vm, "plc_status_description", "plcStatusDescription"),
			GTIN:                 pickString(vm, "gtin", "GTIN"),
		}
		if sourceID != nil {
			variant.VariantID = *sourceID
		}
		variants = append(variants, variant)

		variantTag := ""
		if sourceID != nil {
			variantTag = *sourceID
		}
		assets = append(assets, extractAssets(vm, variantTag)...)
	}

	// Master-level digital assets are documents attached to the product.
	assets = append(assets, extractAssets(m, "")...)

	return variants, assets
}

// extractAssets reads the digital_assets[] list from a variant or product
// map. URL-less entries are kept here; the repository drops them at
// persistence time so the skip is logged in one place.
func extractAssets(m map[string]any, variantTag string) []Asset {
	rawAssets, _ := pick(m, "digital_assets", "digitalAssets").([]any)

	assets := make([]Asset, 0, len(rawAssets))
	for _, ra := range rawAssets {
		am, ok := ra.(map[string]any)
		if !ok {
			continue
		}

		url := pickString(am, "url")
		asset := Asset{
			SourceVariantID: variantTag,
			URLHighRes:      pickString(am, "url_highress", "urlHighRes", "url_highres"),
			Type:            pickString(am, "type"),
			Subtype:         pickString(am, "subtype"),
		}
		if url != nil {
			asset.URL = *url
		}
		assets = append(assets, asset)
	}
	return assets
}

// frontImage finds the first variant-level front product picture.
func frontImage(assets []Asset) *string {
	for _, a := range assets {
		if a.SourceVariantID == "" || a.URL == "" || a.Subtype == nil {
			continue
		}
		if *a.Subtype == "item_picture_front" || *a.Subtype == "itemPictureFront" {
			url := a.URL
			return &url
		}
	}
	return nil
}
