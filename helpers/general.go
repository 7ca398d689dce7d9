package helpers

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/jdkato/prose/transform"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GetTitleFunc returns a func that title cases a string in the given
// style, one of
//
//   - "Go", every word capitalized
//   - "AP" (see https://www.apstylebook.com/)
//   - "Chicago" (see http://www.chicagomanualofstyle.org/home.html)
//
// An unknown or empty style gives AP.
func GetTitleFunc(style string) func(s string) string {
	switch strings.ToLower(style) {
	case "go":
		return cases.Title(language.English, cases.NoLower).String
	case "chicago":
		return transform.NewTitleConverter(transform.ChicagoStyle).Title
	default:
		return transform.NewTitleConverter(transform.APStyle).Title
	}
}

// MD5String returns the hex encoded MD5 hash of f.
func MD5String(f string) string {
	h := md5.Sum([]byte(f))
	return hex.EncodeToString(h[:])
}
