package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/retouchlab/internal/content"
	"github.com/retouchlab/internal/metrics"
	"github.com/retouchlab/internal/store"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownPage     = errors.New("unknown content page")
	ErrSectionNotFound = errors.New("content section not found")
	ErrSectionForeign  = errors.New("content section is owned by another page")
	ErrVersionConflict = errors.New("content section was changed by someone else")
	ErrInvalidContent  = errors.New("content body must be valid JSON")
	ErrInvalidDocument = errors.New("page document must be a JSON object")
	ErrContentStorage  = errors.New("content storage failure")
)

// ForeignSectionError is returned when a write targets a section stored
// in another page document.
type ForeignSectionError struct {
	Page    string
	Section string
	Owner   content.Ref
}

func (e *ForeignSectionError) Error() string {
	return fmt.Sprintf("%s.%s is edited on %s.%s", e.Page, e.Section, e.Owner.Page, e.Owner.Section)
}

func (e *ForeignSectionError) Is(target error) bool {
	return target == ErrSectionForeign
}

// RedirectTo is the content API location of the owning section.
func (e *ForeignSectionError) RedirectTo() string {
	return e.Owner.Path()
}

// SectionValue is a section as served by the content API.
type SectionValue struct {
	Page    string
	Name    string
	Data    json.RawMessage
	Version int64
	// Owner is set when the value was read from another page document.
	Owner *content.Ref
}

// ContentService implements default seeding, cross-page ownership,
// normalization and validation on top of a store.Store.
type ContentService struct {
	store    store.Store
	defaults content.Defaults
	log      logrus.FieldLogger
}

// NewContentService wires a store with the default documents used for
// first-use seeding.
func NewContentService(s store.Store, defaults content.Defaults, logger logrus.FieldLogger) *ContentService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ContentService{
		store:    s,
		defaults: defaults,
		log:      logger.WithField("component", "content"),
	}
}

// Defaults exposes the seed documents.
func (s *ContentService) Defaults() content.Defaults {
	return s.defaults
}

func (s *ContentService) storageError(err error, page, section, op string) error {
	s.log.WithFields(logrus.Fields{
		"page":    page,
		"section": section,
		"op":      op,
	}).WithError(err).Error("content store failure")
	return fmt.Errorf("%s %s: %w", op, page, ErrContentStorage)
}

// GetSection returns page/section, seeding the default on first access.
func (s *ContentService) GetSection(ctx context.Context, page, section string) (SectionValue, error) {
	if !content.IsKnownPage(page) {
		return SectionValue{}, ErrUnknownPage
	}

	if owner, ok := content.Owner(page, section); ok {
		value, err := s.GetSection(ctx, owner.Page, owner.Section)
		if err != nil {
			return SectionValue{}, err
		}
		value.Owner = &owner
		return value, nil
	}

	stored, ok, err := s.store.Section(ctx, page, section)
	if err != nil {
		return SectionValue{}, s.storageError(err, page, section, "read")
	}
	if ok {
		metrics.ContentReads.WithLabelValues(page, metrics.Seeded(false)).Inc()
		return fromStored(stored), nil
	}

	def, ok := s.defaults.Section(page, section)
	if !ok {
		return SectionValue{}, ErrSectionNotFound
	}
	seeded, err := s.store.Seed(ctx, page, section, def)
	if err != nil {
		return SectionValue{}, s.storageError(err, page, section, "seed")
	}
	metrics.ContentReads.WithLabelValues(page, metrics.Seeded(true)).Inc()
	s.log.WithFields(logrus.Fields{"page": page, "section": section}).Info("seeded default section")
	return fromStored(seeded), nil
}

// GetDocument returns the whole page document. Default sections that are
// not stored yet are seeded first. Sections owned by other pages are read
// from their owners.
func (s *ContentService) GetDocument(ctx context.Context, page string) (content.Document, error) {
	return s.document(ctx, page, true)
}

func (s *ContentService) document(ctx context.Context, page string, fillDefaults bool) (content.Document, error) {
	if !content.IsKnownPage(page) {
		return nil, ErrUnknownPage
	}

	stored, err := s.store.Document(ctx, page)
	if err != nil {
		return nil, s.storageError(err, page, "", "read")
	}

	seeded := 0
	if fillDefaults {
		for _, name := range s.defaults.Sections(page) {
			if _, foreign := content.Owner(page, name); foreign {
				continue
			}
			if _, ok := stored[name]; ok {
				continue
			}
			def, _ := s.defaults.Section(page, name)
			sec, err := s.store.Seed(ctx, page, name, def)
			if err != nil {
				return nil, s.storageError(err, page, name, "seed")
			}
			stored[name] = sec
			seeded++
		}
		if seeded > 0 {
			s.log.WithFields(logrus.Fields{"page": page, "sections": seeded}).Info("seeded default sections")
		}
	}
	metrics.ContentReads.WithLabelValues(page, metrics.Seeded(seeded > 0)).Inc()

	doc := make(content.Document, len(stored))
	for name, sec := range stored {
		doc[name] = sec.Data
	}
	for _, name := range content.ForeignSections(page) {
		value, err := s.GetSection(ctx, page, name)
		if errors.Is(err, ErrSectionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		doc[name] = value.Data
	}
	return doc, nil
}

// PutSection replaces page/section with body. A non-zero
// expectedVersion rejects the write when the stored version differs.
func (s *ContentService) PutSection(ctx context.Context, page, section string, body json.RawMessage, expectedVersion int64) (SectionValue, error) {
	if !content.IsKnownPage(page) {
		return SectionValue{}, ErrUnknownPage
	}
	if owner, ok := content.Owner(page, section); ok {
		s.countWrite(page, metrics.ResultRejected)
		return SectionValue{}, &ForeignSectionError{Page: page, Section: section, Owner: owner}
	}

	data, err := s.prepare(page, section, body)
	if err != nil {
		s.countWrite(page, metrics.ResultRejected)
		return SectionValue{}, err
	}

	stored, err := s.store.Put(ctx, page, section, data, expectedVersion)
	if errors.Is(err, store.ErrVersionConflict) {
		s.countWrite(page, metrics.ResultRejected)
		return SectionValue{}, ErrVersionConflict
	}
	if err != nil {
		s.countWrite(page, metrics.ResultError)
		return SectionValue{}, s.storageError(err, page, section, "write")
	}

	s.countWrite(page, metrics.ResultOK)
	return fromStored(stored), nil
}

// PutDocument replaces every locally owned section of page. Sections
// owned by other pages are dropped from body and re-attached from their
// owners in the returned document.
func (s *ContentService) PutDocument(ctx context.Context, page string, body json.RawMessage) (content.Document, error) {
	if !content.IsKnownPage(page) {
		return nil, ErrUnknownPage
	}

	var incoming map[string]json.RawMessage
	if err := json.Unmarshal(body, &incoming); err != nil || incoming == nil {
		s.countWrite(page, metrics.ResultRejected)
		return nil, ErrInvalidDocument
	}

	sections := make(map[string]json.RawMessage, len(incoming))
	invalid := &content.ValidationError{Fields: map[string]string{}}
	for name, raw := range incoming {
		if _, foreign := content.Owner(page, name); foreign {
			continue
		}
		data, err := s.prepare(page, name, raw)
		var verr *content.ValidationError
		switch {
		case errors.As(err, &verr):
			for field, msg := range verr.Fields {
				invalid.Fields[name+"."+field] = msg
			}
			continue
		case err != nil:
			s.countWrite(page, metrics.ResultRejected)
			return nil, err
		}
		sections[name] = data
	}
	if len(invalid.Fields) > 0 {
		s.countWrite(page, metrics.ResultRejected)
		return nil, invalid
	}

	if err := s.store.Replace(ctx, page, sections, nil); err != nil {
		s.countWrite(page, metrics.ResultError)
		return nil, s.storageError(err, page, "", "replace")
	}
	s.countWrite(page, metrics.ResultOK)

	return s.document(ctx, page, false)
}

func (s *ContentService) prepare(page, section string, body json.RawMessage) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, ErrInvalidContent
	}
	if err := content.ValidateSection(page, section, body); err != nil {
		return nil, err
	}
	return content.Normalize(page, section, body)
}

// SeedPage stores the default sections of page that are not stored yet
// and reports how many were added. Existing sections are left untouched.
func (s *ContentService) SeedPage(ctx context.Context, page string) (int, error) {
	if !content.IsKnownPage(page) {
		return 0, ErrUnknownPage
	}

	added := 0
	for _, name := range s.defaults.Sections(page) {
		if _, foreign := content.Owner(page, name); foreign {
			continue
		}
		_, ok, err := s.store.Section(ctx, page, name)
		if err != nil {
			return added, s.storageError(err, page, name, "read")
		}
		if ok {
			continue
		}
		def, _ := s.defaults.Section(page, name)
		if _, err := s.store.Seed(ctx, page, name, def); err != nil {
			return added, s.storageError(err, page, name, "seed")
		}
		added++
	}
	return added, nil
}

// ListSections reports the stored sections of every page with versions.
func (s *ContentService) ListSections(ctx context.Context) (map[string][]SectionValue, error) {
	out := make(map[string][]SectionValue, len(content.Pages()))
	for _, page := range content.Pages() {
		doc, err := s.store.Document(ctx, page)
		if err != nil {
			return nil, s.storageError(err, page, "", "read")
		}
		values := make([]SectionValue, 0, len(doc))
		for _, name := range sortedKeys(doc) {
			values = append(values, fromStored(doc[name]))
		}
		out[page] = values
	}
	return out, nil
}

func (s *ContentService) countWrite(page, result string) {
	metrics.ContentWrites.WithLabelValues(page, result).Inc()
}

func fromStored(sec store.Section) SectionValue {
	return SectionValue{Page: sec.Page, Name: sec.Name, Data: sec.Data, Version: sec.Version}
}
