package db

import (
	"time"

	"gorm.io/datatypes"
)

// ContentSection stores one section of a page document as raw JSON.
// Version starts at 1 and grows by one on every write.
type ContentSection struct {
	ID        uint           `gorm:"primarykey"`
	Page      string         `gorm:"size:64;not null;uniqueIndex:idx_content_page_section"`
	Section   string         `gorm:"size:128;not null;uniqueIndex:idx_content_page_section"`
	Data      datatypes.JSON `gorm:"not null"`
	Version   int64          `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the table name stable across model renames.
func (ContentSection) TableName() string {
	return "content_sections"
}
