package content

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Field value types understood by the schema.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Field value formats understood by the schema.
const (
	FormatSlug  = "slug"
	FormatDate  = "date"
	FormatEmail = "email"
	FormatURL   = "url"
)

// DateLayout is the calendar date format used by articles.
const DateLayout = "2006-01-02"

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Field describes one key of a section record or list item.
type Field struct {
	Name     string
	Label    string
	Required bool
	Type     string
	Format   string
}

// SectionSchema describes the fields of a section and of its list items.
type SectionSchema struct {
	Fields  []Field
	ListKey string
	Item    []Field
}

// ArticleFields are the fields every news article must carry.
var ArticleFields = []Field{
	{Name: "title", Label: "Title", Required: true, Type: TypeString},
	{Name: "slug", Label: "Slug", Required: true, Type: TypeString, Format: FormatSlug},
	{Name: "excerpt", Label: "Excerpt", Required: true, Type: TypeString},
	{Name: "content", Label: "Content", Required: true, Type: TypeString},
	{Name: "category", Label: "Category", Required: true, Type: TypeString},
	{Name: "author", Label: "Author", Required: true, Type: TypeString},
	{Name: "date", Label: "Date", Required: true, Type: TypeString, Format: FormatDate},
	{Name: "tags", Label: "Tags", Type: TypeArray},
}

var schemas = map[Ref]SectionSchema{
	{Page: PageNews, Section: "articles"}: {
		ListKey: "items",
		Item:    ArticleFields,
	},
	{Page: PageContactInfo, Section: "details"}: {
		Fields: []Field{
			{Name: "email", Label: "Email", Type: TypeString, Format: FormatEmail},
			{Name: "phone", Label: "Phone", Type: TypeString},
			{Name: "address", Label: "Address", Type: TypeString},
			{Name: "website", Label: "Website", Type: TypeString, Format: FormatURL},
		},
	},
}

// SchemaFor returns the schema registered for page/section.
func SchemaFor(page, section string) (SectionSchema, bool) {
	schema, ok := schemas[Ref{Page: page, Section: section}]
	return schema, ok
}

// ValidationError collects field violations keyed by field path.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateSection checks raw against the schema registered for
// page/section. Sections without a schema are accepted as-is.
func ValidateSection(page, section string, raw json.RawMessage) error {
	schema, ok := SchemaFor(page, section)
	if !ok {
		return nil
	}

	record, ok := decodeObject(raw)
	if !ok {
		return &ValidationError{Fields: map[string]string{"_": "section must be a JSON object"}}
	}

	errs := ValidateRecord(schema.Fields, record)
	if schema.ListKey != "" {
		items, present := record[schema.ListKey]
		list, isList := items.([]interface{})
		switch {
		case present && items != nil && !isList:
			errs[schema.ListKey] = "must be a list"
		default:
			for i, item := range list {
				prefix := schema.ListKey + "." + strconv.Itoa(i)
				entry, ok := item.(map[string]interface{})
				if !ok {
					errs[prefix] = "must be an object"
					continue
				}
				for key, msg := range ValidateRecord(schema.Item, entry) {
					errs[prefix+"."+key] = msg
				}
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// ValidateRecord checks one record against fields and returns every
// violation keyed by field name. The map is never nil.
func ValidateRecord(fields []Field, record map[string]interface{}) map[string]string {
	errs := map[string]string{}
	for _, field := range fields {
		value, present := record[field.Name]
		if !present || value == nil || isBlank(value) {
			if field.Required {
				errs[field.Name] = label(field) + " is required"
			}
			continue
		}
		if msg := checkType(field, value); msg != "" {
			errs[field.Name] = msg
			continue
		}
		if msg := checkFormat(field, value); msg != "" {
			errs[field.Name] = msg
		}
	}
	return errs
}

func label(field Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func isBlank(value interface{}) bool {
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) == ""
}

func checkType(field Field, value interface{}) string {
	ok := true
	switch field.Type {
	case TypeString:
		_, ok = value.(string)
	case TypeNumber:
		switch value.(type) {
		case json.Number, float64, int, int64:
		default:
			ok = false
		}
	case TypeBoolean:
		_, ok = value.(bool)
	case TypeArray:
		_, ok = value.([]interface{})
	case TypeObject:
		_, ok = value.(map[string]interface{})
	}
	if !ok {
		return fmt.Sprintf("%s must be a %s", label(field), field.Type)
	}
	return ""
}

func checkFormat(field Field, value interface{}) string {
	s, ok := value.(string)
	if !ok || field.Format == "" {
		return ""
	}
	s = strings.TrimSpace(s)

	switch field.Format {
	case FormatSlug:
		if !slugPattern.MatchString(s) {
			return label(field) + " may only contain lowercase letters, digits and dashes"
		}
	case FormatDate:
		if !isDate(s) {
			return label(field) + " must be a date like 2024-01-31"
		}
	case FormatEmail:
		if _, err := mail.ParseAddress(s); err != nil {
			return label(field) + " must be a valid email address"
		}
	case FormatURL:
		if !isURL(s) {
			return label(field) + " must be an http(s) URL or site path"
		}
	}
	return ""
}

// isDate accepts a calendar date or a full RFC 3339 timestamp. Both keep
// articles ordered when compared as strings.
func isDate(s string) bool {
	for _, layout := range []string{DateLayout, time.RFC3339} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func isURL(s string) bool {
	if strings.HasPrefix(s, "/") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
