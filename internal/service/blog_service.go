package service

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/retouchlab/internal/content"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrArticleNotFound is returned when no article carries the slug.
var ErrArticleNotFound = errors.New("article not found")

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	articleSanitizer = bluemonday.UGCPolicy()
)

// RenderedArticle is an article with its body converted to safe HTML.
type RenderedArticle struct {
	content.Article
	HTML string
}

// BlogService reads articles from the news document.
type BlogService struct {
	content *ContentService
}

func NewBlogService(contentService *ContentService) *BlogService {
	return &BlogService{content: contentService}
}

// Articles returns all articles, newest first.
func (s *BlogService) Articles(ctx context.Context) ([]content.Article, error) {
	value, err := s.content.GetSection(ctx, content.PageNews, "articles")
	if err != nil {
		return nil, err
	}
	list, err := content.Decode[content.List[content.Article]](value.Data)
	if err != nil {
		return nil, err
	}

	articles := make([]content.Article, 0, len(list.Items))
	for _, article := range list.Items {
		articles = append(articles, withCover(article))
	}
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Date > articles[j].Date
	})
	return articles, nil
}

// ArticleBySlug finds one article and renders its markdown body.
func (s *BlogService) ArticleBySlug(ctx context.Context, slug string) (RenderedArticle, error) {
	slug = strings.TrimSpace(slug)
	articles, err := s.Articles(ctx)
	if err != nil {
		return RenderedArticle{}, err
	}
	for _, article := range articles {
		if article.Slug != slug {
			continue
		}
		body, err := RenderMarkdown(article.Content)
		if err != nil {
			return RenderedArticle{}, err
		}
		return RenderedArticle{Article: article, HTML: body}, nil
	}
	return RenderedArticle{}, ErrArticleNotFound
}

// RenderMarkdown converts markdown to sanitized HTML.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return articleSanitizer.Sanitize(buf.String()), nil
}
