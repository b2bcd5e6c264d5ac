package mobiledetect

import "strings"

// keywordSet is a set of lowercase substrings.
type keywordSet map[string]struct{}

func newKeywordSet(keywords ...string) keywordSet {
	result := make(keywordSet, len(keywords))
	for _, word := range keywords {
		result[strings.ToLower(word)] = struct{}{}
	}
	return result
}

func (k keywordSet) contains(s string) bool {
	for keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// defaultTargeted are reported by name rather than as a bare "true".
var defaultTargeted = []string{"iphone", "android", "ipod", "ipad"}

// catchAllKeywords match the long tail of handheld browsers.
var catchAllKeywords = newKeywordSet(
	"palm", "blackberry", "nokia", "phone", "midp", "mobi", "symbian", "chtml", "ericsson", "minimo",
	"audiovox", "motorola", "samsung", "telit", "upg1", "windows ce", "ucweb", "astel", "plucker",
	"x320", "x240", "j2me", "sgh", "portable", "sprint", "docomo", "kddi", "softbank", "android", "mmp",
	"pdxgw", "netfront", "xiino", "vodafone", "portalmmm", "sagem", "mot-", "sie-", "ipod", "up.b",
	"webos", "amoi", "novarra", "cdm", "alcatel", "pocket", "ipad", "iphone", "mobileexplorer", "mobile",
)

// wapAcceptKeyword marks WAP capable clients in the Accept header.
const wapAcceptKeyword = "vnd.wap"
