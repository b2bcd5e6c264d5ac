package environment

// Config selects the environment from APP_ENV.
type Config struct {
	Name string `env:"APP_ENV" envDefault:"development"`
}

// Environment returns the parsed environment.
func (c Config) Environment() Environment { return Parse(c.Name) }
