package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/retouchlab/internal/content"
)

func TestArticleBySlugRendersMarkdown(t *testing.T) {
	svc := newTestContentService(t)
	blog := NewBlogService(svc)
	ctx := context.Background()

	article, err := blog.ArticleBySlug(ctx, "five-tips-for-better-product-photos")
	if err != nil {
		t.Fatalf("ArticleBySlug returned error: %v", err)
	}
	if !strings.Contains(article.HTML, "<h2") || !strings.Contains(article.HTML, "Light matters most") {
		t.Fatalf("expected rendered heading, got %q", article.HTML)
	}

	if _, err := blog.ArticleBySlug(ctx, "missing"); !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticlesNewestFirst(t *testing.T) {
	svc := newTestContentService(t)
	blog := NewBlogService(svc)
	ctx := context.Background()

	body := `{"items":[
		{"id":1,"title":"Old","slug":"old","excerpt":"e","content":"c","category":"x","author":"a","date":"2023-05-01"},
		{"id":2,"title":"New","slug":"new","excerpt":"e","content":"<script>alert(1)</script>\n\n*hi*","category":"x","author":"a","date":"2024-02-01"}
	]}`
	if _, err := svc.PutSection(ctx, content.PageNews, "articles", json.RawMessage(body), 0); err != nil {
		t.Fatalf("PutSection returned error: %v", err)
	}

	articles, err := blog.Articles(ctx)
	if err != nil {
		t.Fatalf("Articles returned error: %v", err)
	}
	if len(articles) != 2 || articles[0].Slug != "new" {
		t.Fatalf("unexpected order %+v", articles)
	}

	rendered, err := blog.ArticleBySlug(ctx, "new")
	if err != nil {
		t.Fatalf("ArticleBySlug returned error: %v", err)
	}
	if strings.Contains(rendered.HTML, "<script") {
		t.Fatalf("expected script to be sanitized, got %q", rendered.HTML)
	}
	if !strings.Contains(rendered.HTML, "<em>hi</em>") {
		t.Fatalf("expected emphasis, got %q", rendered.HTML)
	}
}
