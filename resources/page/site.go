package page

import (
	"time"

	"github.com/sunwei/blogsite/common/maps"
)

// Site represents the site in the build, as seen from templates via .Site.
type Site interface {
	// Title Returns the configured title for this Site.
	Title() string

	// BaseURL Returns the BaseURL for this Site.
	BaseURL() string

	// Params Returns the site params.
	Params() maps.Params

	// Param Returns the site param with the given (dotted) key.
	Param(key any) (any, error)

	// Config Returns a copy of the resolved configuration.
	Config() maps.Params

	// GATrackingCode Returns the Google Analytics tracking code, empty if
	// not configured.
	GATrackingCode() string

	// Posts Returns the dated documents, newest first.
	Posts() Pages

	// Pages Returns the undated documents.
	Pages() Pages

	// Topics Returns the posts grouped by topic.
	Topics() PagesGroup

	// Data Returns a map of all the data inside /data.
	Data() map[string]any

	// BuildDate Returns the time of the build.
	BuildDate() time.Time
}
