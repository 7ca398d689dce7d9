package page

import "strings"

const (
	// KindPost is a dated document.
	KindPost = "post"

	// KindPage is an undated document, e.g. about.md.
	KindPage = "page"

	// The rest are list and special pages.

	KindHome  = "home"
	KindTopic = "topic"
	Kind404   = "404"
)

var kindMap = map[string]string{
	strings.ToLower(KindPost):  KindPost,
	strings.ToLower(KindPage):  KindPage,
	strings.ToLower(KindHome):  KindHome,
	strings.ToLower(KindTopic): KindTopic,
	strings.ToLower(Kind404):   Kind404,
}

// GetKind gets the page kind given a string, empty if not found.
func GetKind(s string) string {
	return kindMap[strings.ToLower(s)]
}
