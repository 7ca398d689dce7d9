// Package related finds related documents through an inverted index of
// their keywords.
package related

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// IndexConfig configures an index.
type IndexConfig struct {
	// The index name. This maps to a front matter field or param, e.g.
	// "topic" or "date".
	Name string

	// Layout used to turn a date into a keyword. "2006" puts posts of the
	// same year together. Only used for dates.
	Pattern string

	// This index's weight in a search. Higher is "better".
	Weight int

	// Lower case all string values in and queries to this index.
	ToLower bool
}

// Keyword is the interface a keyword in the search index must implement.
type Keyword interface {
	String() string
}

/*
Config configures how related posts are found.

An example site config.toml:

	[related]
	threshold = 80
	[[related.indices]]
	name = "topic"
	weight = 100
	[[related.indices]]
	name = "date"
	weight = 10
	pattern = "2006"
*/
type Config struct {
	// Only include matches >= threshold, a normalized rank between 0 and 100.
	Threshold int

	// By default newer posts are left out to keep "See also" lists stable.
	IncludeNewer bool

	// Lower case all string values and queries to the indices.
	ToLower bool

	// Maximum number of results. Zero means no limit.
	Limit int

	Indices IndexConfigs
}

// DefaultConfig relates posts by topic, with the publish year as a weak
// signal.
var DefaultConfig = Config{
	Threshold: 80,
	ToLower:   true,
	Limit:     5,
	Indices: IndexConfigs{
		IndexConfig{Name: "topic", Weight: 100},
		IndexConfig{Name: "date", Weight: 10, Pattern: "2006"},
	},
}

// IndexConfigs holds a set of index configurations.
type IndexConfigs []IndexConfig

// InvertedIndex holds an inverted index, also sometimes named posting list, which
// lists, for every possible search term, the documents that contain that term.
type InvertedIndex struct {
	cfg   Config
	index map[string]map[Keyword][]Document

	totalWeight int
}

// NewInvertedIndex creates an empty index for cfg.
func NewInvertedIndex(cfg Config) *InvertedIndex {
	indices := make(IndexConfigs, len(cfg.Indices))
	copy(indices, cfg.Indices)
	cfg.Indices = indices

	idx := &InvertedIndex{cfg: cfg, index: make(map[string]map[Keyword][]Document)}
	for i, ic := range cfg.Indices {
		if cfg.ToLower {
			cfg.Indices[i].ToLower = true
		}
		idx.index[ic.Name] = make(map[Keyword][]Document)
		idx.totalWeight += ic.Weight
	}
	return idx
}

// Add documents to the index.
func (idx *InvertedIndex) Add(docs ...Document) error {
	for _, cfg := range idx.cfg.Indices {
		if cfg.Weight == 0 {
			continue
		}
		set := idx.index[cfg.Name]

		for _, doc := range docs {
			keywords, err := doc.RelatedKeywords(cfg)
			if err != nil {
				return err
			}
			for _, kw := range keywords {
				set[kw] = append(set[kw], doc)
			}
		}
	}

	return nil
}

type rankedDocument struct {
	Weight int
	Doc    Document
}

// Search returns the documents sharing keywords with doc, best match
// first. doc itself is never part of the result.
func (idx *InvertedIndex) Search(doc Document) ([]Document, error) {
	if idx.totalWeight == 0 {
		return nil, nil
	}

	weights := make(map[Document]int)

	for _, cfg := range idx.cfg.Indices {
		if cfg.Weight == 0 {
			continue
		}
		keywords, err := doc.RelatedKeywords(cfg)
		if err != nil {
			return nil, err
		}

		// A document counts once per index.
		seen := make(map[Document]bool)
		for _, kw := range keywords {
			for _, d := range idx.index[cfg.Name][kw] {
				if seen[d] || d == doc || d.Name() == doc.Name() {
					continue
				}
				if !idx.cfg.IncludeNewer && d.PublishDate().After(doc.PublishDate()) {
					continue
				}
				seen[d] = true
				weights[d] += cfg.Weight
			}
		}
	}

	var matches []rankedDocument
	for d, w := range weights {
		if idx.norm(w) >= idx.cfg.Threshold {
			matches = append(matches, rankedDocument{Weight: w, Doc: d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		mi, mj := matches[i], matches[j]
		if mi.Weight != mj.Weight {
			return mi.Weight > mj.Weight
		}
		di, dj := mi.Doc.PublishDate(), mj.Doc.PublishDate()
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return mi.Doc.Name() < mj.Doc.Name()
	})

	if idx.cfg.Limit > 0 && len(matches) > idx.cfg.Limit {
		matches = matches[:idx.cfg.Limit]
	}

	result := make([]Document, len(matches))
	for i, m := range matches {
		result[i] = m.Doc
	}

	return result, nil
}

// norm returns weight as a rank between 0 and 100.
func (idx *InvertedIndex) norm(weight int) int {
	return int(math.Floor(float64(weight) / float64(idx.totalWeight) * 100))
}

// Document is the interface an indexable document must fulfill.
type Document interface {
	// RelatedKeywords returns a list of keywords for the given index config.
	RelatedKeywords(cfg IndexConfig) ([]Keyword, error)

	// When this document was or will be published.
	PublishDate() time.Time

	// Name is used as a tiebreaker if both Weight and PublishDate are
	// the same.
	Name() string
}

// ToKeywords returns a Keyword slice of the given input.
func (cfg IndexConfig) ToKeywords(v any) ([]Keyword, error) {
	var (
		keywords []Keyword
		toLower  = cfg.ToLower
	)
	switch vv := v.(type) {
	case string:
		if toLower {
			vv = strings.ToLower(vv)
		}
		keywords = append(keywords, StringKeyword(vv))
	case []string:
		if toLower {
			vc := make([]string, len(vv))
			copy(vc, vv)
			for i := 0; i < len(vc); i++ {
				vc[i] = strings.ToLower(vc[i])
			}
			vv = vc
		}
		keywords = append(keywords, StringsToKeywords(vv...)...)
	case time.Time:
		layout := "2006"
		if cfg.Pattern != "" {
			layout = cfg.Pattern
		}
		keywords = append(keywords, StringKeyword(vv.Format(layout)))
	case nil:
		return keywords, nil
	default:
		// Scalars such as series: 1.
		sv, err := cast.ToStringE(vv)
		if err != nil {
			return keywords, fmt.Errorf("indexing currently not supported for index %q and type %T", cfg.Name, vv)
		}
		if toLower {
			sv = strings.ToLower(sv)
		}
		keywords = append(keywords, StringKeyword(sv))
	}

	return keywords, nil
}

// StringKeyword is a string search keyword.
type StringKeyword string

func (s StringKeyword) String() string {
	return string(s)
}

// StringsToKeywords converts the given slice of strings to a slice of Keyword.
func StringsToKeywords(s ...string) []Keyword {
	kw := make([]Keyword, len(s))

	for i := 0; i < len(s); i++ {
		kw[i] = StringKeyword(s[i])
	}

	return kw
}
