package normalize

import (
	"encoding/json"

	"catalog-sync/core/server"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/feed"
	"catalog-sync/feature/catalog/models"
)

// xdImageFields maps the XD Connects image columns to asset subtypes,
// in feed order.
var xdImageFields = []struct {
	subtype string
	value   func(*feed.XDProduct) string
}{
	{"main_image", func(p *feed.XDProduct) string { return p.MainImage }},
	{"main_image_neutral", func(p *feed.XDProduct) string { return p.MainImageNeutral }},
	{"extra_image1", func(p *feed.XDProduct) string { return p.ExtraImage1 }},
	{"extra_image2", func(p *feed.XDProduct) string { return p.ExtraImage2 }},
	{"extra_image3", func(p *feed.XDProduct) string { return p.ExtraImage3 }},
	{"image_print", func(p *feed.XDProduct) string { return p.ImagePrint }},
}

// NormalizeXDConnects converts one raw XD Connects record into the canonical
// triple. The feed is flat: there are no variants, and the per-record image
// columns become master-level image assets. Identity is the ItemCode; XD
// assigns no separate external id.
func NormalizeXDConnects(raw json.RawMessage) Canonical {
	var notes []string

	var rec feed.XDProduct
	if err := json.Unmarshal(raw, &rec); err != nil {
		notes = append(notes, "record is not a JSON object")
	}

	// The ItemCode is the record's only identity key. Without it the product
	// could never be matched on a later run, so the record is marked for skip
	// instead of accreting duplicates.
	productCode := utils.CleanString(rec.ItemCode)
	skipReason := ""
	if productCode == nil {
		skipReason = "record has no ItemCode"
	}

	name := resolveName(utils.CleanString(rec.ItemName), productCode, nil, "XD Connects", &notes)

	cm := "cm"
	gr := "gr"
	kg := "kg"

	product := models.Product{
		Source:      server.SupplierXDConnects,
		Name:        name,
		Description: utils.CleanString(rec.LongDescription),
		Brand:       utils.CleanString(rec.Brand),
		ProductCode: productCode,

		Category:    utils.CleanString(rec.MainCategory),
		SubCategory: utils.CleanString(rec.SubCategory),
		Material:    utils.CleanString(rec.Material),
		Color:       utils.CleanString(rec.Color),

		Length:     utils.FloatOrNil(rec.ItemLengthCM),
		LengthUnit: &cm,
		Width:      utils.FloatOrNil(rec.ItemWidthCM),
		WidthUnit:  &cm,
		Height:     utils.FloatOrNil(rec.ItemHeightCM),
		HeightUnit: &cm,
		Dimensions: utils.CleanString(rec.ItemDimensions),

		NetWeight:     utils.FloatOrNil(rec.ItemWeightNetGr),
		NetWeightUnit: &gr,
		GrossWeight:   utils.FloatOrNil(rec.ItemWeightGrossGr),
		Weight:        utils.FloatOrNil(rec.ItemWeightNetGr),

		InnerCartonQuantity:   utils.IntOrNil(rec.InnerboxQty),
		OuterCartonQuantity:   utils.IntOrNil(rec.OuterCartonQty),
		CartonLength:          utils.FloatOrNil(rec.OuterCartonLengthCM),
		CartonLengthUnit:      &cm,
		CartonWidth:           utils.FloatOrNil(rec.OuterCartonWidthCM),
		CartonWidthUnit:       &cm,
		CartonHeight:          utils.FloatOrNil(rec.OuterCartonHeightCM),
		CartonHeightUnit:      &cm,
		CartonGrossWeight:     utils.FloatOrNil(rec.OuterCartonWeightGrossKG),
		CartonGrossWeightUnit: &kg,

		LongDescription: utils.CleanString(rec.LongDescription),
		CountryOfOrigin: utils.CleanString(rec.CountryOfOrigin),
		CommodityCode:   utils.CleanString(rec.CommodityCode),
		EanCode:         utils.CleanString(rec.EANCode),

		ImageURL:  utils.CleanString(rec.MainImage),
		Timestamp: utils.TimeOrNil(rec.ItemDataLastModifiedDateTime),

		RawData: rawPayload(raw, &notes),
	}

	imageType := models.AssetTypeImage
	var assets []Asset
	for _, field := range xdImageFields {
		url := utils.CleanString(field.value(&rec))
		if url == nil {
			continue
		}
		subtype := field.subtype
		assets = append(assets, Asset{
			URL:     *url,
			Type:    &imageType,
			Subtype: &subtype,
		})
	}

	return Canonical{
		Product:    product,
		Assets:     assets,
		SkipReason: skipReason,
		Notes:      notes,
	}
}
