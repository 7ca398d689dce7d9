package config

// Permalinks configures the URL patterns of posts and pages.
// Supported tokens are :year, :month, :day, :slug, :title, :topic and
// :filename.
type Permalinks struct {
	Posts string
	Pages string
}
