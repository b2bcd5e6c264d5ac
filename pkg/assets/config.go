package assets

// Config locates the stylesheets on disk and on the web.
type Config struct {
	StylesheetsDir string `env:"ASSETS_STYLESHEETS_DIR" envDefault:"public/stylesheets"`
	StylesheetsURL string `env:"ASSETS_STYLESHEETS_URL" envDefault:"/stylesheets"`
}

// NewFromConfig returns the mobilized stylesheet emitter for cfg.
func NewFromConfig(cfg Config, device func() string) StylesheetFunc {
	return Mobilize(LinkTags(cfg.StylesheetsURL), cfg.StylesheetsDir, device)
}
