package sitelib

import (
	"fmt"
	"path"
	"strings"

	"github.com/sunwei/blogsite/related"
	"github.com/sunwei/blogsite/resources/page"
)

// assemblePages splits the documents into posts and pages, sets their
// permalinks and groups the posts by topic.
func (s *Site) assemblePages() error {
	s.Log.Process("assemblePages", fmt.Sprintf("%d documents", s.pageMap.Len()))

	all := s.pageMap.Pages()

	var posts, pages page.Pages
	for _, p := range all {
		if p.IsPost() {
			posts = append(posts, p)
		} else {
			pages = append(pages, p)
		}
	}

	page.SortByDefault(posts)
	page.SortByDefault(pages)

	targets := make(outputTargets)
	s.targetPaths = make(map[*page.Page]string)
	for _, p := range all {
		key := permalinksPages
		if p.IsPost() {
			key = permalinksPosts
		}

		link, err := s.permalinks.Expand(key, p)
		if err != nil {
			return fmt.Errorf("permalink of %q: %w", p.File.Path(), err)
		}

		if path.Ext(link) == "" && !strings.HasSuffix(link, "/") {
			link += "/"
		}

		target := targetPath(link)
		if err := targets.claim(target, p.File.Path()); err != nil {
			return err
		}
		s.targetPaths[p] = target

		s.setLinks(p, link)
	}

	s.posts = posts
	s.pages = pages

	if err := s.relatePosts(posts); err != nil {
		return err
	}

	// Topics that only differ in case share a list page.
	s.topics = posts.GroupByTopicFunc(s.PathSpec.URLize)
	for i, g := range s.topics {
		s.topics[i].RelPermalink = s.PathSpec.RelURL(topicLink(s.PathSpec.URLize(g.Key)))
	}

	return s.claimListTargets(targets)
}

// claimListTargets adds the outputs of the home, topic and 404 pages to
// targets, so a document can not be overwritten by a list page.
func (s *Site) claimListTargets(targets outputTargets) error {
	if s.hasListOutput(page.KindHome) {
		if err := targets.claim("index.html", "home page"); err != nil {
			return err
		}
	}

	if s.hasListOutput(page.KindTopic) {
		for _, g := range s.topics {
			target := targetPath(topicLink(s.PathSpec.URLize(g.Key)))
			if err := targets.claim(target, "topic "+g.Key); err != nil {
				return err
			}
		}
	}

	if s.hasListOutput(page.Kind404) {
		if err := targets.claim("404.html", "404 page"); err != nil {
			return err
		}
	}

	return nil
}

// outputTargets maps a file below the publish dir to what is published
// there.
type outputTargets map[string]string

func (t outputTargets) claim(target, owner string) error {
	if other, found := t[target]; found {
		return fmt.Errorf("%q and %q are both published to %q", other, owner, target)
	}
	t[target] = owner
	return nil
}

// relatePosts sets the related posts of every post.
func (s *Site) relatePosts(posts page.Pages) error {
	idx := related.NewInvertedIndex(s.SiteConfig.Related)

	docs := make([]related.Document, len(posts))
	for i, p := range posts {
		docs[i] = p
	}
	if err := idx.Add(docs...); err != nil {
		return fmt.Errorf("related index: %w", err)
	}

	for _, p := range posts {
		result, err := idx.Search(p)
		if err != nil {
			return fmt.Errorf("related posts of %q: %w", p.File.Path(), err)
		}
		p.Related = make(page.Pages, len(result))
		for i, d := range result {
			p.Related[i] = d.(*page.Page)
		}
	}

	return nil
}

func (s *Site) setLinks(p *page.Page, link string) {
	p.RelPermalink = s.PathSpec.RelURL(link)
	p.Permalink = s.PathSpec.AbsURL(link)
}

func topicLink(key string) string {
	return "/topics/" + key + "/"
}

// targetPath returns the file below the publish dir that a link is
// written to: pretty links get an index.html.
func targetPath(link string) string {
	if path.Ext(link) != "" && !strings.HasSuffix(link, "/") {
		return strings.TrimPrefix(link, "/")
	}
	return strings.TrimPrefix(path.Join(link, "index.html"), "/")
}
