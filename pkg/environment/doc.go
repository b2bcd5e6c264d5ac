// Package environment names the deployment environment and carries it
// through request contexts.
//
// The environment decides defaults elsewhere: logs are text in development
// and JSON otherwise, and resolved views are cached outside development.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
//
//	if environment.IsProduction(ctx) {
//		// ...
//	}
package environment
