package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryFilters(c *Categories) []string {
	var out []string
	for _, item := range c.State().Data[CategoryListKey].([]interface{}) {
		out = append(out, item.(map[string]interface{})["filter"].(string))
	}
	return out
}

func TestCategoriesProtectAll(t *testing.T) {
	fake := &fakeSections{data: json.RawMessage(`{"items":[{"id":1,"name":"All","filter":"all"},{"id":2,"name":"Retouching","filter":"retouching"}]}`)}
	e, _ := newTestEditor(t, fake, "portfolio", "categories", "Categories")
	c := NewCategories(e)

	assert.ErrorIs(t, c.Remove(0), ErrProtectedCategory)
	assert.ErrorIs(t, c.SetFilter(0, "everything"), ErrProtectedCategory)

	require.NoError(t, c.Rename(0, "Everything"))
	assert.Equal(t, []string{"all", "retouching"}, categoryFilters(c))

	_, err := c.Add("Color Grading")
	require.NoError(t, err)
	assert.Equal(t, []string{"all", "retouching", "color-grading"}, categoryFilters(c))

	require.NoError(t, c.Rename(1, "Skin Retouch"))
	require.NoError(t, c.Remove(1))
	assert.Equal(t, []string{"all", "color-grading"}, categoryFilters(c))
}

func TestCategoriesEnsureRestoresAll(t *testing.T) {
	fake := &fakeSections{data: json.RawMessage(`{"items":[{"id":2,"name":"Retouching","filter":"retouching"}]}`)}
	e, _ := newTestEditor(t, fake, "portfolio", "categories", "Categories")
	c := NewCategories(e)

	require.NoError(t, c.Ensure())
	assert.Equal(t, []string{"all", "retouching"}, categoryFilters(c))
}
