package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/retouchlab/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore keeps sections in the content_sections table.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore wraps an already migrated gorm connection.
func NewSQLStore(gdb *gorm.DB) *SQLStore {
	return &SQLStore{db: gdb}
}

func toSection(row db.ContentSection) Section {
	return Section{
		Page:      row.Page,
		Name:      row.Section,
		Data:      json.RawMessage(row.Data),
		Version:   row.Version,
		UpdatedAt: row.UpdatedAt,
	}
}

func (s *SQLStore) Document(ctx context.Context, page string) (map[string]Section, error) {
	var rows []db.ContentSection
	if err := s.db.WithContext(ctx).Where("page = ?", page).Order("section").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load document %s: %w", page, err)
	}

	sections := make(map[string]Section, len(rows))
	for _, row := range rows {
		sections[row.Section] = toSection(row)
	}
	return sections, nil
}

func (s *SQLStore) Section(ctx context.Context, page, name string) (Section, bool, error) {
	row, err := s.find(s.db.WithContext(ctx), page, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Section{}, false, nil
		}
		return Section{}, false, fmt.Errorf("load section %s.%s: %w", page, name, err)
	}
	return toSection(row), true, nil
}

func (s *SQLStore) find(tx *gorm.DB, page, name string) (db.ContentSection, error) {
	var row db.ContentSection
	err := tx.Where("page = ? AND section = ?", page, name).First(&row).Error
	return row, err
}

func (s *SQLStore) Seed(ctx context.Context, page, name string, data json.RawMessage) (Section, error) {
	row := db.ContentSection{Page: page, Section: name, Data: datatypes.JSON(data), Version: 1}
	tx := s.db.WithContext(ctx)
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page"}, {Name: "section"}},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		return Section{}, fmt.Errorf("seed section %s.%s: %w", page, name, err)
	}

	stored, err := s.find(tx, page, name)
	if err != nil {
		return Section{}, fmt.Errorf("reload section %s.%s: %w", page, name, err)
	}
	return toSection(stored), nil
}

func (s *SQLStore) Put(ctx context.Context, page, name string, data json.RawMessage, expectedVersion int64) (Section, error) {
	var result db.ContentSection
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.find(tx, page, name)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if expectedVersion > 0 {
				return ErrVersionConflict
			}
			result = db.ContentSection{Page: page, Section: name, Data: datatypes.JSON(data), Version: 1}
			return tx.Create(&result).Error
		case err != nil:
			return err
		}

		if expectedVersion > 0 && row.Version != expectedVersion {
			return ErrVersionConflict
		}

		update := tx.Model(&db.ContentSection{}).
			Where("id = ? AND version = ?", row.ID, row.Version).
			Updates(map[string]interface{}{
				"data":       datatypes.JSON(data),
				"version":    row.Version + 1,
				"updated_at": time.Now(),
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return ErrVersionConflict
		}

		result, err = s.find(tx, page, name)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return Section{}, err
		}
		return Section{}, fmt.Errorf("save section %s.%s: %w", page, name, err)
	}
	return toSection(result), nil
}

func (s *SQLStore) Replace(ctx context.Context, page string, sections map[string]json.RawMessage, keep func(string) bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []db.ContentSection
		if err := tx.Where("page = ?", page).Find(&rows).Error; err != nil {
			return err
		}

		existing := make(map[string]db.ContentSection, len(rows))
		for _, row := range rows {
			existing[row.Section] = row
			if _, ok := sections[row.Section]; ok {
				continue
			}
			if keep != nil && keep(row.Section) {
				continue
			}
			if err := tx.Delete(&db.ContentSection{}, row.ID).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		for name, data := range sections {
			row, ok := existing[name]
			if !ok {
				if err := tx.Create(&db.ContentSection{Page: page, Section: name, Data: datatypes.JSON(data), Version: 1}).Error; err != nil {
					return err
				}
				continue
			}
			if err := tx.Model(&db.ContentSection{}).Where("id = ?", row.ID).Updates(map[string]interface{}{
				"data":       datatypes.JSON(data),
				"version":    row.Version + 1,
				"updated_at": now,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace document %s: %w", page, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
