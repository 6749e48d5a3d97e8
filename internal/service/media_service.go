package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retouchlab/internal/db"
	"github.com/retouchlab/internal/media"
	"github.com/retouchlab/internal/metrics"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMediaMissing     = errors.New("no file was uploaded")
	ErrUnsupportedMedia = errors.New("only image files can be uploaded")
	ErrMediaTooLarge    = errors.New("file exceeds the upload size limit")
	ErrMediaNotFound    = errors.New("media asset not found")
	ErrMediaStorage     = errors.New("media host failure")
)

// DefaultMaxUploadBytes is the upload limit when none is configured.
const DefaultMaxUploadBytes int64 = 5 << 20

// DefaultMediaFolder receives uploads without a folder hint.
const DefaultMediaFolder = "uploads"

var folderPattern = regexp.MustCompile(`[^a-z0-9/_-]+`)

// UploadInput describes one uploaded file.
type UploadInput struct {
	Filename     string
	Folder       string
	Size         int64
	DeclaredType string
	Reader       io.Reader
}

// MediaService stores images on a media.Host and tracks them in the database.
type MediaService struct {
	db       *gorm.DB
	host     media.Host
	maxBytes int64
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewMediaService(gdb *gorm.DB, host media.Host, maxBytes int64, logger logrus.FieldLogger) *MediaService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &MediaService{
		db:       gdb,
		host:     host,
		maxBytes: maxBytes,
		log:      logger.WithFields(logrus.Fields{"component": "media", "backend": host.Name()}),
		now:      time.Now,
	}
}

// MaxBytes is the accepted upload size.
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload validates the file contents and stores them under
// folder/<date>-<uuid><ext>.
func (s *MediaService) Upload(ctx context.Context, input UploadInput) (*db.MediaAsset, error) {
	if input.Reader == nil {
		return nil, ErrMediaMissing
	}
	if input.Size > s.maxBytes {
		s.countUpload(metrics.ResultRejected)
		return nil, ErrMediaTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(input.Reader, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		s.countUpload(metrics.ResultRejected)
		return nil, ErrMediaTooLarge
	}
	if len(data) == 0 {
		s.countUpload(metrics.ResultRejected)
		return nil, ErrMediaMissing
	}

	info, err := media.Inspect(data)
	if err != nil {
		s.countUpload(metrics.ResultRejected)
		return nil, ErrUnsupportedMedia
	}

	folder := CleanFolder(input.Folder)
	key := path.Join(folder, fmt.Sprintf("%s-%s%s", s.now().Format("20060102"), uuid.NewString(), info.Extension))

	obj, err := s.host.Put(ctx, key, bytes.NewReader(data), int64(len(data)), info.ContentType)
	if err != nil {
		s.countUpload(metrics.ResultError)
		s.log.WithField("public_id", key).WithError(err).Error("media upload failed")
		return nil, ErrMediaStorage
	}

	asset := &db.MediaAsset{
		PublicID:    obj.Key,
		URL:         obj.URL,
		Folder:      folder,
		Filename:    path.Base(strings.ReplaceAll(input.Filename, "\\", "/")),
		ContentType: info.ContentType,
		Size:        int64(len(data)),
		Width:       info.Width,
		Height:      info.Height,
		Backend:     s.host.Name(),
	}
	if err := s.db.WithContext(ctx).Create(asset).Error; err != nil {
		s.countUpload(metrics.ResultError)
		if delErr := s.host.Delete(ctx, obj.Key); delErr != nil {
			s.log.WithField("public_id", obj.Key).WithError(delErr).Warn("orphaned media object")
		}
		return nil, fmt.Errorf("record media asset: %w", err)
	}

	s.countUpload(metrics.ResultOK)
	s.log.WithFields(logrus.Fields{"public_id": asset.PublicID, "size": asset.Size}).Info("media uploaded")
	return asset, nil
}

// Delete removes an asset addressed by hosted URL or public id.
func (s *MediaService) Delete(ctx context.Context, ref string) error {
	asset, err := s.Find(ctx, ref)
	if err != nil {
		if errors.Is(err, ErrMediaNotFound) {
			s.countDelete(metrics.ResultRejected)
		}
		return err
	}

	if err := s.host.Delete(ctx, asset.PublicID); err != nil {
		s.countDelete(metrics.ResultError)
		s.log.WithField("public_id", asset.PublicID).WithError(err).Error("media delete failed")
		return ErrMediaStorage
	}
	if err := s.db.WithContext(ctx).Unscoped().Delete(asset).Error; err != nil {
		s.countDelete(metrics.ResultError)
		return fmt.Errorf("delete media record: %w", err)
	}

	s.countDelete(metrics.ResultOK)
	return nil
}

// Find resolves a hosted URL or bare public id to its tracking record.
func (s *MediaService) Find(ctx context.Context, ref string) (*db.MediaAsset, error) {
	ref = strings.TrimSpace(ref)
	if decoded, err := url.PathUnescape(ref); err == nil {
		ref = decoded
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrMediaNotFound
	}

	publicID := strings.TrimPrefix(ref, "/")
	if key, ok := s.host.KeyFromURL(ref); ok {
		publicID = key
	} else if key, ok := s.host.KeyFromURL("/" + publicID); ok {
		publicID = key
	}

	var asset db.MediaAsset
	err := s.db.WithContext(ctx).
		Where("public_id = ? OR url = ?", publicID, ref).
		First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// List returns tracked assets, newest first, optionally limited to a folder.
func (s *MediaService) List(ctx context.Context, folder string) ([]db.MediaAsset, error) {
	query := s.db.WithContext(ctx).Model(&db.MediaAsset{})
	if strings.TrimSpace(folder) != "" {
		query = query.Where("folder = ?", CleanFolder(folder))
	}

	var assets []db.MediaAsset
	if err := query.Order("created_at desc").Order("id desc").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// CleanFolder lowercases the folder hint and strips anything outside
// [a-z0-9/_-].
func CleanFolder(folder string) string {
	folder = folderPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(folder)), "")
	cleaned, err := media.CleanKey(folder)
	if err != nil {
		return DefaultMediaFolder
	}
	return cleaned
}

func (s *MediaService) countUpload(result string) {
	metrics.MediaUploads.WithLabelValues(s.host.Name(), result).Inc()
}

func (s *MediaService) countDelete(result string) {
	metrics.MediaDeletes.WithLabelValues(s.host.Name(), result).Inc()
}
