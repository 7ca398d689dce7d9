package config

import (
	"fmt"

	"github.com/mitchellh/hashstructure"
	"github.com/mitchellh/mapstructure"
	"github.com/sunwei/blogsite/common/maps"
	"github.com/sunwei/blogsite/related"
)

// SiteConfig is the typed view of the site configuration, decoded once per
// build after the environment has been injected.
type SiteConfig struct {
	Title   string
	BaseURL string

	WorkingDir string
	ContentDir string
	LayoutDir  string
	StaticDir  string
	DataDir    string
	PublishDir string

	Permalinks Permalinks

	// Number of words in an automatic summary.
	SummaryLength int

	// "AP", "Chicago" or "Go".
	TitleCaseStyle string

	BuildDrafts  bool
	BuildFuture  bool
	EnableEmoji  bool
	CanonifyURLs bool

	// Kinds of list output to skip, "topic" and "404".
	DisableKinds []string

	// Glob patterns, relative to the content dir, of files to skip.
	IgnoreFiles []string

	// How related posts are found.
	Related related.Config

	// Google Analytics tracking code, set from GA_TRACKING_CODE.
	GATrackingCode string `mapstructure:"ga_tracking_code"`

	Params maps.Params
}

// DecodeSiteConfig decodes cfg into a SiteConfig.
func DecodeSiteConfig(cfg Provider) (SiteConfig, error) {
	var sc SiteConfig

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &sc,
	})
	if err != nil {
		return sc, err
	}

	root, _ := cfg.Get("").(maps.Params)
	if err := dec.Decode(root); err != nil {
		return sc, fmt.Errorf("failed to decode site config: %w", err)
	}

	if sc.Params == nil {
		sc.Params = maps.Params{}
	}

	if !cfg.IsSet("related") {
		sc.Related = related.DefaultConfig
	}

	return sc, nil
}

// Fingerprint returns a hash of sc. Two builds with equal fingerprints see
// the same configuration.
func Fingerprint(sc SiteConfig) (uint64, error) {
	return hashstructure.Hash(sc, nil)
}
