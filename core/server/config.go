package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// AutoImport triggers a background catalog import at startup when the
	// product table is empty.
	AutoImport bool `mapstructure:"auto_import" default:"false"`
}

// Supplier tags identify the upstream feeds. Identity resolution is always
// scoped to one of these values.
const (
	SupplierMidocean   = "midocean"
	SupplierXDConnects = "xd-connects"
)

// Suppliers returns every known supplier tag in a stable order.
func Suppliers() []string {
	return []string{SupplierMidocean, SupplierXDConnects}
}

// IsValidSupplier checks whether the given tag names a known supplier feed.
func IsValidSupplier(tag string) bool {
	switch tag {
	case SupplierMidocean, SupplierXDConnects:
		return true
	default:
		return false
	}
}
