package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"

	"gorm.io/datatypes"
)

// NameMaxLen is the products.name column width. Longer names are truncated
// with an ellipsis marker.
const NameMaxLen = 255

// maxRawData caps the preserved original payload at 64 KiB.
const maxRawData = 64 << 10

// Asset is a digital asset as extracted from the raw record. It is tagged
// with the source-supplied variant identifier, not a database id; the
// repository resolves the reference after variants are persisted.
type Asset struct {
	// SourceVariantID is the supplier's variant identifier, empty for
	// master-level assets.
	SourceVariantID string
	URL             string
	URLHighRes      *string
	Type            *string
	Subtype         *string
}

// Canonical is the normalized Product/Variant/Asset triple produced from one
// raw supplier record. Normalization never fails; a degraded record still
// yields a valid Canonical with the degradations listed in Notes.
type Canonical struct {
	Product  models.Product
	Variants []models.ProductVariant
	Assets   []Asset

	// SkipReason marks a record that must not be persisted: without any
	// identity key, every re-sync would insert a fresh duplicate row. The
	// engine counts such records as skipped.
	SkipReason string

	// Notes records fallback paths taken (placeholder name, capped payload).
	// Informational only.
	Notes []string
}

// Code returns the record's best-effort identifying code for error reports.
func (c *Canonical) Code() string {
	if c.Product.ProductCode != nil {
		return *c.Product.ProductCode
	}
	if c.Product.ExternalID != nil {
		return *c.Product.ExternalID
	}
	return "unknown"
}

// resolveName applies the name policy: the extracted candidate wins, then
// productCode, then a supplier-labelled external id, then a synthesized
// unique placeholder. The result is never empty and never wider than the
// name column.
func resolveName(candidate *string, productCode, externalID *string, supplierLabel string, notes *[]string) string {
	if candidate != nil && strings.TrimSpace(*candidate) != "" {
		return utils.Truncate(strings.TrimSpace(*candidate), NameMaxLen)
	}

	if productCode != nil {
		*notes = append(*notes, "name fallback: product code")
		return utils.Truncate(*productCode, NameMaxLen)
	}
	if externalID != nil {
		*notes = append(*notes, "name fallback: external id")
		return utils.Truncate(fmt.Sprintf("%s Product %s", supplierLabel, *externalID), NameMaxLen)
	}

	*notes = append(*notes, "name fallback: synthesized placeholder")
	return fmt.Sprintf("Product %d", time.Now().UnixNano())
}

// rawPayload preserves the original record for audit, size-capped. Payloads
// over the cap are replaced by a small marker object so the column never
// stores a truncated (invalid) JSON document.
func rawPayload(raw json.RawMessage, notes *[]string) datatypes.JSON {
	if len(raw) <= maxRawData {
		return datatypes.JSON(raw)
	}
	*notes = append(*notes, "raw payload capped")
	marker, _ := json.Marshal(map[string]any{"truncated": true, "original_bytes": len(raw)})
	return datatypes.JSON(marker)
}
