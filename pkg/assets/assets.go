package assets

import (
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// StylesheetFunc renders link tags for stylesheet sources.
type StylesheetFunc func(sources ...string) template.HTML

// LinkTags returns a StylesheetFunc that emits one link tag per source,
// resolving relative sources under baseURL. A missing ".css" extension is
// added.
func LinkTags(baseURL string) StylesheetFunc {
	return func(sources ...string) template.HTML {
		var b strings.Builder
		for i, src := range sources {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(`<link rel="stylesheet" href="`)
			b.WriteString(template.HTMLEscapeString(href(baseURL, src)))
			b.WriteString(`" media="screen">`)
		}
		return template.HTML(b.String())
	}
}

// Mobilize decorates base so that every source is followed by its device
// variant "<source>_<device>.css" when that file exists under dir. The device
// identifier is read on each call; an empty identifier leaves the sources
// unchanged. The filesystem is checked on every call.
func Mobilize(base StylesheetFunc, dir string, device func() string) StylesheetFunc {
	if base == nil {
		panic("assets: nil base stylesheet func")
	}
	if device == nil {
		panic("assets: nil device func")
	}
	return func(sources ...string) template.HTML {
		return base(Variants(dir, device(), sources...)...)
	}
}

// Variants returns sources with the existing device variants appended after
// their originals. A device identifier that could name a path outside dir is
// treated as empty.
func Variants(dir, device string, sources ...string) []string {
	if !safeDevice(device) {
		return sources
	}
	out := make([]string, 0, len(sources)*2)
	for _, src := range sources {
		out = append(out, src)
		variant := VariantName(src, device)
		if fileExists(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(variant, "/")))) {
			out = append(out, variant)
		}
	}
	return out
}

// VariantName returns the device variant of source, always with a ".css"
// extension.
func VariantName(source, device string) string {
	return strings.TrimSuffix(source, ".css") + "_" + device + ".css"
}

func safeDevice(device string) bool {
	return device != "" && !strings.ContainsAny(device, `/\`) && !strings.Contains(device, "..")
}

func fileExists(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

func href(baseURL, src string) string {
	if !strings.HasSuffix(src, ".css") {
		src += ".css"
	}
	if strings.Contains(src, "://") || strings.HasPrefix(src, "/") || baseURL == "" {
		return src
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + path.Clean(src)
}
