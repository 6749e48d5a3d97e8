package service

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/retouchlab/internal/content"
)

func TestMarkdownImageURLs(t *testing.T) {
	source := "intro\n\n![before](/uploads/a.png)\n\ntext ![after](<https://cdn.example.com/b c.jpg> \"title\")\n\n![]()"
	got := markdownImageURLs(source)
	want := []string{"/uploads/a.png", "https://cdn.example.com/b c.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestArticlesUseFirstInlineImageAsCover(t *testing.T) {
	svc := newTestContentService(t)
	blog := NewBlogService(svc)
	ctx := context.Background()

	body := `{"items":[
		{"id":1,"title":"Inline","slug":"inline","excerpt":"e","content":"![shot](/uploads/inline.png)","category":"x","author":"a","date":"2024-01-01"},
		{"id":2,"title":"Cover","slug":"cover","excerpt":"e","content":"![shot](/uploads/inline.png)","category":"x","author":"a","date":"2023-01-01","image":"/uploads/cover.png"}
	]}`
	if _, err := svc.PutSection(ctx, content.PageNews, "articles", json.RawMessage(body), 0); err != nil {
		t.Fatalf("PutSection returned error: %v", err)
	}

	articles, err := blog.Articles(ctx)
	if err != nil {
		t.Fatalf("Articles returned error: %v", err)
	}
	if articles[0].Image.URL != "/uploads/inline.png" {
		t.Fatalf("expected inline cover, got %q", articles[0].Image.URL)
	}
	if articles[1].Image.URL != "/uploads/cover.png" {
		t.Fatalf("expected explicit cover kept, got %q", articles[1].Image.URL)
	}
}
