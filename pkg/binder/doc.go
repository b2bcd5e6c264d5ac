// Package binder fills request structs from query strings, route
// parameters and urlencoded forms.
//
//	type resolveRequest struct {
//		Prefix  string   `path:"prefix"`
//		Name    string   `path:"name"`
//		Format  string   `query:"format"`
//		Partial bool     `query:"partial"`
//		Locals  []string `query:"locals"` // ?locals=a,b or repeated
//	}
//
// Fields without a tag bind to their lowercase name; a "-" tag skips the
// field. Supported kinds are strings, integers, booleans (including on/off
// and yes/no), pointers to them and slices of them.
package binder
