package service

import (
	"regexp"
	"strings"

	"github.com/retouchlab/internal/content"
)

var markdownImagePattern = regexp.MustCompile(`!\[[^\]]*]\((<[^>]+>|[^)\s]+)([^)]*)\)`)

// markdownImageURLs lists the inline image targets of a markdown body in
// document order.
func markdownImageURLs(source string) []string {
	matches := markdownImagePattern.FindAllStringSubmatch(source, -1)
	urls := make([]string, 0, len(matches))
	for _, groups := range matches {
		target := strings.TrimSuffix(strings.TrimPrefix(groups[1], "<"), ">")
		if target = strings.TrimSpace(target); target != "" {
			urls = append(urls, target)
		}
	}
	return urls
}

// withCover fills an empty article image from the first inline image.
func withCover(article content.Article) content.Article {
	if !article.Image.IsZero() {
		return article
	}
	if urls := markdownImageURLs(article.Content); len(urls) > 0 {
		article.Image = content.ImageRef{URL: urls[0]}
	}
	return article
}
