package content

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SmallImageSlots is the fixed number of thumbnails in the home banner.
const SmallImageSlots = 4

// AllCategoryFilter is the filter value of the portfolio "All" entry.
const AllCategoryFilter = "all"

type normalizer func(map[string]interface{})

var normalizers = map[Ref]normalizer{
	{Page: PageHome, Section: "banner"}:          normalizeBanner,
	{Page: PagePricing, Section: "plans"}:        normalizePlans,
	{Page: PagePortfolio, Section: "categories"}: normalizeCategories,
}

// Normalize applies the structural fixes registered for page/section.
// Values that are not JSON objects, and sections without a normalizer,
// are returned unchanged.
func Normalize(page, section string, raw json.RawMessage) (json.RawMessage, error) {
	fix, ok := normalizers[Ref{Page: page, Section: section}]
	if !ok {
		return raw, nil
	}

	record, ok := decodeObject(raw)
	if !ok {
		return raw, nil
	}
	fix(record)
	return json.Marshal(record)
}

func decodeObject(raw json.RawMessage) (map[string]interface{}, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var record map[string]interface{}
	if err := dec.Decode(&record); err != nil || record == nil {
		return nil, false
	}
	return record, true
}

func normalizeBanner(banner map[string]interface{}) {
	images, ok := banner["images"].(map[string]interface{})
	if !ok {
		images = map[string]interface{}{}
		banner["images"] = images
	}

	current, _ := images["smallImages"].([]interface{})
	slots := make([]interface{}, SmallImageSlots)
	for i := range slots {
		if i < len(current) && current[i] != nil {
			slots[i] = current[i]
			continue
		}
		slots[i] = ""
	}
	images["smallImages"] = slots
}

func normalizePlans(section map[string]interface{}) {
	plans, ok := section["plans"].([]interface{})
	if !ok {
		return
	}
	for _, item := range plans {
		if plan, ok := item.(map[string]interface{}); ok {
			CanonicalizePlan(plan)
		}
	}
}

// CanonicalizePlan rewrites the legacy name/recommended keys of a pricing
// plan to title/popular in place.
func CanonicalizePlan(plan map[string]interface{}) {
	if name, ok := plan["name"]; ok {
		if title, _ := plan["title"].(string); strings.TrimSpace(title) == "" {
			plan["title"] = name
		}
		delete(plan, "name")
	}
	if recommended, ok := plan["recommended"]; ok {
		if _, has := plan["popular"]; !has {
			plan["popular"] = truthy(recommended)
		}
		delete(plan, "recommended")
	}
}

func normalizeCategories(section map[string]interface{}) {
	items, _ := section["items"].([]interface{})
	section["items"] = EnsureAllCategory(items)
}

// EnsureAllCategory guarantees the "All" entry exists with its fixed
// filter value. A missing entry is inserted at the front. items is not
// modified; a new slice is returned when a change is needed.
func EnsureAllCategory(items []interface{}) []interface{} {
	for i, item := range items {
		category, ok := item.(map[string]interface{})
		if !ok || !IsAllCategory(category) {
			continue
		}
		if filter, _ := category["filter"].(string); filter == AllCategoryFilter {
			return items
		}
		fixed := make(map[string]interface{}, len(category))
		for k, v := range category {
			fixed[k] = v
		}
		fixed["filter"] = AllCategoryFilter
		next := append([]interface{}(nil), items...)
		next[i] = fixed
		return next
	}

	all := map[string]interface{}{
		"id":     AllCategoryFilter,
		"name":   "All",
		"filter": AllCategoryFilter,
	}
	return append([]interface{}{all}, items...)
}

// IsAllCategory reports whether category is the portfolio "All" entry.
func IsAllCategory(category map[string]interface{}) bool {
	if filter, _ := category["filter"].(string); filter == AllCategoryFilter {
		return true
	}
	name, _ := category["name"].(string)
	return strings.EqualFold(strings.TrimSpace(name), "all")
}

func truthy(v interface{}) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(value))
		return trimmed != "" && trimmed != "false" && trimmed != "0"
	case json.Number:
		return value.String() != "0"
	case float64:
		return value != 0
	default:
		return v != nil
	}
}
