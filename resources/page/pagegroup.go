package page

import "sort"

// PagesGroup represents a list of page groups.
// This is what you get when doing page grouping in the templates.
type PagesGroup []PageGroup

// PageGroup represents a group of pages, grouped by the key.
// The key is typically a topic.
type PageGroup struct {
	// The key, typically a topic.
	Key string

	// The URL of the group's list page, empty if it has none.
	RelPermalink string

	// The Pages in this group.
	Pages
}

// Len returns the number of pages in the page group.
func (psg PagesGroup) Len() int {
	l := 0
	for _, pg := range psg {
		l += len(pg.Pages)
	}
	return l
}

// GroupByTopic groups the pages by topic, ordered by topic. Pages without a
// topic are left out. The page order within each group is kept.
func (p Pages) GroupByTopic() PagesGroup {
	return p.GroupByTopicFunc(func(topic string) string { return topic })
}

// GroupByTopicFunc is GroupByTopic with topics that share key(topic) in one
// group. The group is named by the first spelling seen.
func (p Pages) GroupByTopicFunc(key func(topic string) string) PagesGroup {
	idx := make(map[string]int)
	var groups PagesGroup

	for _, pp := range p {
		if pp.Topic == "" {
			continue
		}
		k := key(pp.Topic)
		i, found := idx[k]
		if !found {
			i = len(groups)
			idx[k] = i
			groups = append(groups, PageGroup{Key: pp.Topic})
		}
		groups[i].Pages = append(groups[i].Pages, pp)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})

	return groups
}
