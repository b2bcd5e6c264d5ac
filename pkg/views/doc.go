// Package views resolves view templates by name, prefix, partial flag,
// format and locals, with single-level format fallback and a process-wide
// freshness-checked cache.
//
// # Lookup
//
// A Lookup is the primitive that knows where templates live. It reports
// candidates together with their modification time, or ErrNotFound. Three
// implementations ship with the package:
//
//   - FSLookup reads "<prefix>/<name>.<format>.tmpl" files from an fs.FS
//     (partials are prefixed with an underscore);
//   - Registry holds templ components registered in code;
//   - S3Lookup reads the same layout from an S3 bucket.
//
// # Fallback
//
// Resolver.Resolve tries the requested format first and, when nothing is
// found and the requested format is not the default one, retries once with
// the default format ("html"). Layouts (prefix "layouts") never fall back:
//
//	r := views.NewResolver(views.NewFSLookup(os.DirFS("views")))
//	tpls, err := r.Resolve(ctx, views.Query{
//		Name:     "index",
//		Prefix:   "home",
//		Format:   "mobile",
//		CacheKey: "default",
//	})
//	if errors.Is(err, views.ErrNotFound) {
//		// neither index.mobile.tmpl nor index.html.tmpl exist
//	}
//
// # Caching
//
// When caching is enabled and the query carries a CacheKey, results are
// stored per (key, format, name, prefix, partial, sorted locals). Every call
// still asks the Lookup for candidates; the cached entry is reused unless a
// candidate is newer than the cached one or the candidate set became empty.
// What the cache saves is materialization (reading and parsing templates).
// Empty results are cached as well. Queries without a CacheKey bypass the
// cache entirely.
package views
