package db

import "gorm.io/gorm"

// MediaAsset tracks an image stored on the configured media host.
type MediaAsset struct {
	gorm.Model
	PublicID    string `gorm:"size:255;uniqueIndex;not null"`
	URL         string `gorm:"size:1024;index;not null"`
	Folder      string `gorm:"size:128"`
	Filename    string
	ContentType string `gorm:"size:64"`
	Size        int64
	Width       int
	Height      int
	Backend     string `gorm:"size:16"`
}
