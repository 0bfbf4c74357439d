package feed

// Config holds configuration for both supplier feeds.
type Config struct {
	// Midocean holds the midocean gateway settings.
	Midocean MidoceanConfig `mapstructure:"midocean"`
	// XDConnects holds the XD Connects feed settings.
	XDConnects XDConnectsConfig `mapstructure:"xdconnects"`
}

// MidoceanConfig configures the midocean product gateway.
type MidoceanConfig struct {
	// Environment selects the gateway host (test or production).
	Environment string `mapstructure:"environment" default:"test"`
	// ApiKey is sent as the x-Gateway-APIKey header.
	ApiKey string `mapstructure:"api_key" default:""`
	// BaseURL overrides the environment-derived gateway host when set.
	BaseURL string `mapstructure:"base_url" default:""`
}

// XDConnectsConfig configures the XD Connects JSON feed. XD authenticates
// through a signed download URL, not a header.
type XDConnectsConfig struct {
	// ProductFeedURL is the signed product-data feed URL.
	ProductFeedURL string `mapstructure:"product_feed_url" default:""`
}
