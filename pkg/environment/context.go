package environment

import (
	"context"
	"strings"
)

// Environment is the deployment environment of the application.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps an environment name or its short alias to an Environment.
// Unknown names fall back to Development.
func Parse(name string) Environment {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	default:
		return Development
	}
}

func (e Environment) IsProduction() bool  { return e == Production }
func (e Environment) IsStaging() bool     { return e == Staging }
func (e Environment) IsDevelopment() bool { return e == Development || e == "" }

// CachesViews reports whether resolved templates are cached by default.
// Development reloads templates on every request.
func (e Environment) CachesViews() bool { return !e.IsDevelopment() }

func (e Environment) String() string { return string(e) }

type contextKey struct{}

// WithContext stores env in ctx.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns the environment stored in ctx, or "" when absent.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction checks the environment stored in ctx.
func IsProduction(ctx context.Context) bool { return FromContext(ctx).IsProduction() }

// IsDevelopment checks the environment stored in ctx. A missing value counts
// as development.
func IsDevelopment(ctx context.Context) bool { return FromContext(ctx).IsDevelopment() }
