package views

import (
	"html/template"
	"path"
)

// DefaultExtension is the file extension of html/template sources ("index.mobile.tmpl").
const DefaultExtension = ".tmpl"

// sourcePath builds "<prefix>/<dir>/<_><base>.<format><ext>".
func sourcePath(s Search, format, ext string) string {
	dir, base := path.Split(s.Name)
	if s.Partial {
		base = "_" + base
	}
	return path.Join(s.Prefix, dir, base+"."+format+ext)
}

func parseHTML(name string, src []byte, funcs template.FuncMap) (*template.Template, error) {
	t := template.New(name)
	if len(funcs) > 0 {
		t = t.Funcs(funcs)
	}
	return t.Parse(string(src))
}
