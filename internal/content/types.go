package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ImageRef is the canonical image reference. It reads either a bare URL
// string or an {url, publicId} object and always writes the object form.
type ImageRef struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

func (r *ImageRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = ImageRef{}
		return nil
	}

	if trimmed[0] == '"' {
		var url string
		if err := json.Unmarshal(trimmed, &url); err != nil {
			return err
		}
		*r = ImageRef{URL: url}
		return nil
	}

	var obj struct {
		URL       string `json:"url"`
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"publicId"`
		PublicID2 string `json:"public_id"`
	}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("image reference: %w", err)
	}
	r.URL = firstNonEmpty(obj.URL, obj.SecureURL)
	r.PublicID = firstNonEmpty(obj.PublicID, obj.PublicID2)
	return nil
}

// IsZero reports whether no image is set.
func (r ImageRef) IsZero() bool {
	return strings.TrimSpace(r.URL) == ""
}

// ItemID is a list item identifier. Editors generate numeric ids, older
// content uses strings; both read into the same value.
type ItemID string

func (id *ItemID) UnmarshalJSON(data []byte) error {
	s, err := flexibleString(data)
	if err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	*id = ItemID(s)
	return nil
}

// Text is a display string that tolerates numbers and booleans in the
// stored JSON (prices, counters).
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	s, err := flexibleString(data)
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

func (t Text) String() string { return string(t) }

func flexibleString(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		err := json.Unmarshal(trimmed, &s)
		return s, err
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}

// Plan is a pricing plan. Legacy plans carry name/recommended instead of
// title/popular; both read into the canonical fields.
type Plan struct {
	ID          ItemID `json:"id"`
	Title       string `json:"title"`
	Price       Text   `json:"price"`
	Period      string `json:"period,omitempty"`
	Description string `json:"description,omitempty"`
	Features    []Text `json:"features,omitempty"`
	Popular     bool   `json:"popular"`
	ButtonText  string `json:"buttonText,omitempty"`
}

func (p *Plan) UnmarshalJSON(data []byte) error {
	type plain Plan
	var legacy struct {
		plain
		Name        string          `json:"name"`
		Recommended json.RawMessage `json:"recommended"`
		PopularRaw  json.RawMessage `json:"popular"`
	}
	if err := json.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("pricing plan: %w", err)
	}

	*p = Plan(legacy.plain)
	if strings.TrimSpace(p.Title) == "" {
		p.Title = legacy.Name
	}
	switch {
	case len(legacy.PopularRaw) > 0:
		p.Popular = rawTruthy(legacy.PopularRaw)
	case len(legacy.Recommended) > 0:
		p.Popular = rawTruthy(legacy.Recommended)
	}
	return nil
}

func rawTruthy(raw json.RawMessage) bool {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return false
	}
	return truthy(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Decode reads raw into a typed view. Empty input yields the zero value.
func Decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}
