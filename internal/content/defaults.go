package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultFiles embed.FS

// Defaults holds the template each section is seeded with on first read.
type Defaults map[string]Document

// LoadDefaults parses the embedded page templates.
func LoadDefaults() (Defaults, error) {
	entries, err := defaultFiles.ReadDir("defaults")
	if err != nil {
		return nil, fmt.Errorf("read default templates: %w", err)
	}

	defaults := make(Defaults, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		raw, err := defaultFiles.ReadFile(path.Join("defaults", name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		doc, err := ParseDefaults(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		defaults[strings.TrimSuffix(name, ".yaml")] = doc
	}
	return defaults, nil
}

// MustLoadDefaults panics when the embedded templates are broken.
func MustLoadDefaults() Defaults {
	defaults, err := LoadDefaults()
	if err != nil {
		panic(err)
	}
	return defaults
}

// ParseDefaults converts a YAML page template into a Document.
func ParseDefaults(raw []byte) (Document, error) {
	var sections map[string]interface{}
	if err := yaml.Unmarshal(raw, &sections); err != nil {
		return nil, err
	}

	doc := make(Document, len(sections))
	for name, value := range sections {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", name, err)
		}
		doc[name] = encoded
	}
	return doc, nil
}

// Section returns a copy of the default value for page/section.
func (d Defaults) Section(page, section string) (json.RawMessage, bool) {
	doc, ok := d[page]
	if !ok {
		return nil, false
	}
	raw, ok := doc[section]
	if !ok {
		return nil, false
	}
	return append(json.RawMessage(nil), raw...), true
}

// Document returns a copy of the default document for page.
func (d Defaults) Document(page string) Document {
	doc := make(Document, len(d[page]))
	for name, raw := range d[page] {
		doc[name] = append(json.RawMessage(nil), raw...)
	}
	return doc
}

// Sections lists the default section names of page in stable order.
func (d Defaults) Sections(page string) []string {
	names := make([]string, 0, len(d[page]))
	for name := range d[page] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
