package editor

import (
	"context"
	"strings"

	"github.com/retouchlab/internal/content"
)

// ArticleListKey is the list field of the news articles section.
const ArticleListKey = "items"

// ArticleForm holds the values of the news article form.
type ArticleForm struct {
	Values map[string]interface{}
	Errors map[string]string
}

// NewArticleForm starts a form, optionally from an existing article.
func NewArticleForm(existing map[string]interface{}) *ArticleForm {
	values := map[string]interface{}{}
	for k, v := range existing {
		values[k] = v
	}
	return &ArticleForm{Values: values, Errors: map[string]string{}}
}

// Set updates one field and clears its error.
func (f *ArticleForm) Set(field string, value interface{}) {
	f.Values[field] = value
	delete(f.Errors, field)
}

// Validate collects every violation of the article schema at once.
func (f *ArticleForm) Validate() bool {
	f.Errors = content.ValidateRecord(content.ArticleFields, f.Values)
	return len(f.Errors) == 0
}

// SuggestSlug derives a slug from the title.
func SuggestSlug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// SaveArticle validates form, inserts or replaces the article in the
// list by id and saves the section. Invalid forms are not submitted.
func (e *Editor) SaveArticle(ctx context.Context, form *ArticleForm) error {
	if !form.Validate() {
		e.mu.Lock()
		e.state.FieldErrors = form.Errors
		e.state.Error = MessageFixFields
		e.mu.Unlock()
		return ErrInvalid
	}

	id, hasID := form.Values["id"]
	replaced := false
	if hasID {
		err := e.apply(func(data map[string]interface{}) (map[string]interface{}, error) {
			list, err := listAt(data, ArticleListKey)
			if err != nil {
				return nil, err
			}
			for i, raw := range list {
				item, ok := raw.(map[string]interface{})
				if !ok || !sameID(item["id"], id) {
					continue
				}
				next := make([]interface{}, len(list))
				copy(next, list)
				next[i] = copyMap(form.Values)
				replaced = true
				return with(data, ArticleListKey, next), nil
			}
			return data, nil
		})
		if err != nil {
			return err
		}
	}
	if !replaced {
		newID, err := e.AddItemWith(ArticleListKey, form.Values)
		if err != nil {
			return err
		}
		form.Values["id"] = newID
	}
	return e.Save(ctx)
}
