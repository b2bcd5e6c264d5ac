// Package assets emits stylesheet link tags with per-device variants.
//
// Mobilize wraps a StylesheetFunc. For a mobile client identified as
// "iphone", a call with "app" checks for app_iphone.css in the stylesheet
// directory and, when it exists, links it after app.css:
//
//	css := assets.Mobilize(assets.LinkTags("/stylesheets"), "public/stylesheets", deviceName)
//	css("app") // <link ... href="/stylesheets/app.css"> and app_iphone.css
package assets
