package views

import "strconv"

// Config holds view resolution settings.
type Config struct {
	Root          string `env:"VIEWS_ROOT" envDefault:"views"`
	Extension     string `env:"VIEWS_EXTENSION" envDefault:".tmpl"`
	Caching       string `env:"VIEWS_CACHING" envDefault:"auto"`
	CacheSize     int    `env:"VIEWS_CACHE_SIZE" envDefault:"4096"`
	DefaultFormat string `env:"VIEWS_DEFAULT_FORMAT" envDefault:"html"`
}

// CachingEnabled reports whether resolved templates are cached. "auto" and
// unparsable values yield fallback, which callers usually derive from the
// runtime environment.
func (c Config) CachingEnabled(fallback bool) bool {
	if on, err := strconv.ParseBool(c.Caching); err == nil {
		return on
	}
	return fallback
}

// S3Config locates templates stored in an S3 compatible bucket.
type S3Config struct {
	Bucket         string `env:"VIEWS_S3_BUCKET"`
	Prefix         string `env:"VIEWS_S3_PREFIX" envDefault:"views"`
	Region         string `env:"VIEWS_S3_REGION" envDefault:"us-east-1"`
	AccessKey      string `env:"VIEWS_S3_ACCESS_KEY"`
	SecretKey      string `env:"VIEWS_S3_SECRET_KEY"`
	Endpoint       string `env:"VIEWS_S3_ENDPOINT"`
	ForcePathStyle bool   `env:"VIEWS_S3_FORCE_PATH_STYLE" envDefault:"false"`
}
