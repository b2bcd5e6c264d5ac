package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu       sync.RWMutex
	cache    = make(map[reflect.Type]any)
	dotenv   sync.Once
	explicit bool
)

// LoadEnv loads the given .env files into the process environment. Variables
// already set are kept. Values from earlier files win over later ones. It must
// run before the first Load to take effect for cached types.
func LoadEnv(paths ...string) error {
	mu.Lock()
	explicit = true
	mu.Unlock()

	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnv, err)
	}
	return nil
}

// Load parses environment variables into v. Each configuration type is parsed
// once; later calls copy the cached value. The .env file in the working
// directory is read on first use unless LoadEnv was called.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDefaultEnv()

	typ := reflect.TypeFor[T]()

	mu.RLock()
	cached, ok := cache[typ]
	mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	parsed, err := env.ParseAs[T]()
	if err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	mu.Lock()
	if cached, ok := cache[typ]; ok {
		parsed = cached.(T)
	} else {
		cache[typ] = parsed
	}
	mu.Unlock()

	*v = parsed
	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ResetCache drops every cached configuration.
func ResetCache() {
	mu.Lock()
	defer mu.Unlock()
	clear(cache)
}

func loadDefaultEnv() {
	dotenv.Do(func() {
		mu.RLock()
		skip := explicit
		mu.RUnlock()
		if !skip {
			// missing .env is fine
			_ = godotenv.Load()
		}
	})
}
