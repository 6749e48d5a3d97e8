package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsCoversEveryPage(t *testing.T) {
	defaults, err := LoadDefaults()
	require.NoError(t, err)

	for _, page := range Pages() {
		assert.NotEmpty(t, defaults.Sections(page), "page %s has no default sections", page)
	}
}

func TestDefaultBannerHasFourEmptySmallImages(t *testing.T) {
	defaults := MustLoadDefaults()

	raw, ok := defaults.Section(PageHome, "banner")
	require.True(t, ok)

	var banner struct {
		Images struct {
			SmallImages []string `json:"smallImages"`
		} `json:"images"`
	}
	require.NoError(t, json.Unmarshal(raw, &banner))
	assert.Equal(t, []string{"", "", "", ""}, banner.Images.SmallImages)
}

func TestDefaultsSectionReturnsCopy(t *testing.T) {
	defaults := MustLoadDefaults()

	first, ok := defaults.Section(PageHome, "faq")
	require.True(t, ok)
	first[0] = 'X'

	second, _ := defaults.Section(PageHome, "faq")
	assert.Equal(t, byte('{'), second[0])
}

func TestNormalizeBanner(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "pads short list",
			in:   `{"title":"T","images":{"mainImage":"m.jpg","smallImages":["a.jpg"]}}`,
			want: `{"images":{"mainImage":"m.jpg","smallImages":["a.jpg","","",""]},"title":"T"}`,
		},
		{
			name: "truncates long list",
			in:   `{"images":{"smallImages":["1","2","3","4","5"]}}`,
			want: `{"images":{"smallImages":["1","2","3","4"]}}`,
		},
		{
			name: "creates missing images",
			in:   `{"title":"T"}`,
			want: `{"images":{"smallImages":["","","",""]},"title":"T"}`,
		},
		{
			name: "keeps object references",
			in:   `{"images":{"smallImages":[{"url":"u","publicId":"p"},null]}}`,
			want: `{"images":{"smallImages":[{"publicId":"p","url":"u"},"","",""]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(PageHome, "banner", json.RawMessage(tt.in))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestNormalizeLeavesNonObjectsAlone(t *testing.T) {
	got, err := Normalize(PageHome, "banner", json.RawMessage(`"oops"`))
	require.NoError(t, err)
	assert.Equal(t, `"oops"`, string(got))

	untouched, err := Normalize(PageHome, "faq", json.RawMessage(`{"items":[]}`))
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(untouched))
}

func TestNormalizePlansCanonicalizesLegacyKeys(t *testing.T) {
	in := `{"plans":[{"id":1,"name":"Basic","recommended":true},{"id":2,"title":"Pro","popular":false,"recommended":true}]}`
	got, err := Normalize(PagePricing, "plans", json.RawMessage(in))
	require.NoError(t, err)
	assert.JSONEq(t, `{"plans":[{"id":1,"title":"Basic","popular":true},{"id":2,"title":"Pro","popular":false}]}`, string(got))
}

func TestNormalizeCategoriesKeepsAllEntry(t *testing.T) {
	edited := `{"items":[{"id":1,"name":"All","filter":"everything"},{"id":2,"name":"Retouching","filter":"retouching"}]}`
	got, err := Normalize(PagePortfolio, "categories", json.RawMessage(edited))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"id":1,"name":"All","filter":"all"},{"id":2,"name":"Retouching","filter":"retouching"}]}`, string(got))

	removed := `{"items":[{"id":2,"name":"Retouching","filter":"retouching"}]}`
	got, err = Normalize(PagePortfolio, "categories", json.RawMessage(removed))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"id":"all","name":"All","filter":"all"},{"id":2,"name":"Retouching","filter":"retouching"}]}`, string(got))
}

func TestValidateSectionNewsArticles(t *testing.T) {
	valid := `{"items":[{"title":"T","slug":"a-post","excerpt":"E","content":"C","category":"Tips","author":"Me","date":"2024-02-29"}]}`
	require.NoError(t, ValidateSection(PageNews, "articles", json.RawMessage(valid)))

	invalid := `{"items":[{"title":" ","slug":"Bad Slug","excerpt":"E","content":"C","category":"Tips","author":"Me","date":"29/02/2024"}]}`
	err := ValidateSection(PageNews, "articles", json.RawMessage(invalid))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Title is required", verr.Fields["items.0.title"])
	assert.Contains(t, verr.Fields, "items.0.slug")
	assert.Contains(t, verr.Fields, "items.0.date")
	assert.Len(t, verr.Fields, 3)
}

func TestArticleDateAcceptsTimestamps(t *testing.T) {
	article := func(date string) json.RawMessage {
		return json.RawMessage(`{"items":[{"title":"T","slug":"a-post","excerpt":"E","content":"C","category":"Tips","author":"Me","date":"` + date + `"}]}`)
	}
	assert.NoError(t, ValidateSection(PageNews, "articles", article("2024-02-29")))
	assert.NoError(t, ValidateSection(PageNews, "articles", article("2024-02-29T10:30:00Z")))
	assert.NoError(t, ValidateSection(PageNews, "articles", article("2024-02-29T10:30:00+02:00")))
	assert.Error(t, ValidateSection(PageNews, "articles", article("2023-02-29")))
	assert.Error(t, ValidateSection(PageNews, "articles", article("Feb 29, 2024")))
}

func TestValidateSectionWithoutSchemaAcceptsAnything(t *testing.T) {
	assert.NoError(t, ValidateSection(PageHome, "faq", json.RawMessage(`[1,2,3]`)))
}

func TestValidateRecordCollectsAllMissingFields(t *testing.T) {
	errs := ValidateRecord(ArticleFields, map[string]interface{}{})
	for _, name := range []string{"title", "slug", "excerpt", "content", "category", "author", "date"} {
		assert.Contains(t, errs, name)
	}
	assert.NotContains(t, errs, "tags")
}

func TestValidateContactDetailsFormats(t *testing.T) {
	err := ValidateSection(PageContactInfo, "details", json.RawMessage(`{"email":"not-an-email","website":"ftp://x"}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "website")

	assert.NoError(t, ValidateSection(PageContactInfo, "details", json.RawMessage(`{"email":"a@b.co","website":"/contact"}`)))
}

func TestImageRefReadsBothShapes(t *testing.T) {
	var fromString ImageRef
	require.NoError(t, json.Unmarshal([]byte(`"https://cdn/x.jpg"`), &fromString))
	assert.Equal(t, ImageRef{URL: "https://cdn/x.jpg"}, fromString)

	var fromObject ImageRef
	require.NoError(t, json.Unmarshal([]byte(`{"url":"https://cdn/y.jpg","publicId":"site/y"}`), &fromObject))
	assert.Equal(t, ImageRef{URL: "https://cdn/y.jpg", PublicID: "site/y"}, fromObject)

	var fromUpload ImageRef
	require.NoError(t, json.Unmarshal([]byte(`{"secure_url":"https://cdn/z.jpg","public_id":"site/z"}`), &fromUpload))
	assert.Equal(t, ImageRef{URL: "https://cdn/z.jpg", PublicID: "site/z"}, fromUpload)

	out, err := json.Marshal(fromString)
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":"https://cdn/x.jpg","publicId":""}`, string(out))
}

func TestPlanReadsLegacyShape(t *testing.T) {
	var plan Plan
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"Basic","price":29,"recommended":"yes"}`), &plan))
	assert.Equal(t, ItemID("3"), plan.ID)
	assert.Equal(t, "Basic", plan.Title)
	assert.Equal(t, Text("29"), plan.Price)
	assert.True(t, plan.Popular)

	var modern Plan
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","title":"Pro","popular":false,"recommended":true}`), &modern))
	assert.False(t, modern.Popular)
}

func TestOwner(t *testing.T) {
	owner, ok := Owner(PageServices, "pricing")
	require.True(t, ok)
	assert.Equal(t, Ref{Page: PagePricing, Section: "plans"}, owner)
	assert.Equal(t, "/api/content/pricing?section=plans", owner.Path())

	_, ok = Owner(PagePricing, "plans")
	assert.False(t, ok)
	assert.Equal(t, []string{"sponsors", "testimonials"}, ForeignSections(PageAbout))
}

func TestEnsureAllCategoryDoesNotMutateInput(t *testing.T) {
	original := map[string]interface{}{"id": 1, "name": "All", "filter": "x"}
	items := []interface{}{original}

	got := EnsureAllCategory(items)
	assert.Equal(t, "x", original["filter"])
	assert.Equal(t, "all", got[0].(map[string]interface{})["filter"])

	same := []interface{}{map[string]interface{}{"name": "All", "filter": "all"}}
	assert.Equal(t, same, EnsureAllCategory(same))
}
