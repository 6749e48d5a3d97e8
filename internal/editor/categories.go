package editor

import (
	"errors"

	"github.com/retouchlab/internal/content"
)

// ErrProtectedCategory is returned when removing the "All" filter.
var ErrProtectedCategory = errors.New("the All category cannot be removed")

// CategoryListKey is the list field of the portfolio categories section.
const CategoryListKey = "items"

// Categories edits portfolio filter categories and keeps the "All" entry.
type Categories struct {
	*Editor
}

func NewCategories(e *Editor) *Categories {
	return &Categories{Editor: e}
}

// Add appends a category whose filter is derived from name.
func (c *Categories) Add(name string) (interface{}, error) {
	return c.AddItemWith(CategoryListKey, map[string]interface{}{
		"name":   name,
		"filter": SuggestSlug(name),
	})
}

// Rename changes the display name. The filter of "All" never changes.
func (c *Categories) Rename(index int, name string) error {
	if err := c.UpdateItem(CategoryListKey, index, "name", name); err != nil {
		return err
	}
	if c.isAll(index) {
		return nil
	}
	return c.UpdateItem(CategoryListKey, index, "filter", SuggestSlug(name))
}

// SetFilter changes the filter value of a category other than "All".
func (c *Categories) SetFilter(index int, filter string) error {
	if c.isAll(index) {
		return ErrProtectedCategory
	}
	return c.UpdateItem(CategoryListKey, index, "filter", filter)
}

// Remove deletes the category at index unless it is "All".
func (c *Categories) Remove(index int) error {
	if c.isAll(index) {
		return ErrProtectedCategory
	}
	return c.RemoveItem(CategoryListKey, index)
}

// Ensure restores the "All" entry when the loaded data lacks it.
func (c *Categories) Ensure() error {
	return c.apply(func(data map[string]interface{}) (map[string]interface{}, error) {
		list, err := listAt(data, CategoryListKey)
		if err != nil {
			return nil, err
		}
		return with(data, CategoryListKey, content.EnsureAllCategory(list)), nil
	})
}

func (c *Categories) isAll(index int) bool {
	state := c.State()
	list, err := listAt(state.Data, CategoryListKey)
	if err != nil || index < 0 || index >= len(list) {
		return false
	}
	item, ok := list[index].(map[string]interface{})
	return ok && content.IsAllCategory(item)
}
