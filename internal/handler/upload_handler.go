package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/retouchlab/internal/db"
	"github.com/retouchlab/internal/service"
)

// multipartSlack 为文件之外的 multipart 边界和表单字段预留空间
const multipartSlack = 64 << 10

type mediaResponse struct {
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	Folder    string `json:"folder"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"created_at"`
}

func toMediaResponse(asset db.MediaAsset) mediaResponse {
	return mediaResponse{
		URL:       asset.URL,
		PublicID:  asset.PublicID,
		Folder:    asset.Folder,
		Width:     asset.Width,
		Height:    asset.Height,
		Size:      asset.Size,
		CreatedAt: asset.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// UploadImage 处理图片上传请求，返回编辑器可能读取的所有 URL 字段
func (a *API) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, a.media.MaxBytes()+multipartSlack)

	file, err := uploadedFile(c)
	if err != nil {
		if isBodyTooLarge(err) {
			respondError(c, http.StatusRequestEntityTooLarge, "Image is too large")
			return
		}
		respondError(c, http.StatusBadRequest, "No image was uploaded")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read uploaded image")
		return
	}
	defer src.Close()

	folder := c.PostForm("folder")
	if folder == "" {
		folder = c.PostForm("directory")
	}

	asset, err := a.media.Upload(c.Request.Context(), service.UploadInput{
		Filename:     file.Filename,
		Folder:       folder,
		Size:         file.Size,
		DeclaredType: file.Header.Get("Content-Type"),
		Reader:       src,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMediaTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "Image is too large")
		return
	case errors.Is(err, service.ErrUnsupportedMedia):
		respondError(c, http.StatusBadRequest, "Only image files can be uploaded")
		return
	case errors.Is(err, service.ErrMediaMissing):
		respondError(c, http.StatusBadRequest, "No image was uploaded")
		return
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Upload successful",
		"path":       asset.URL,
		"filePath":   asset.URL,
		"url":        asset.URL,
		"secure_url": asset.URL,
		"public_id":  asset.PublicID,
		"width":      asset.Width,
		"height":     asset.Height,
	})
}

// uploadedFile 读取 "file" 字段，缺失时回退到旧的 "image" 字段
func uploadedFile(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return c.FormFile("image")
	}
	return file, err
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

// DeleteMedia 按托管 URL 或 public id 删除图片
func (a *API) DeleteMedia(c *gin.Context) {
	ref := strings.TrimPrefix(c.Param("url"), "/")
	if ref == "" {
		ref = c.Query("url")
	}
	if ref == "" {
		ref = c.Query("public_id")
	}
	if strings.TrimSpace(ref) == "" {
		respondError(c, http.StatusBadRequest, "Missing image reference")
		return
	}

	err := a.media.Delete(c.Request.Context(), ref)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted"})
	case errors.Is(err, service.ErrMediaNotFound):
		respondError(c, http.StatusNotFound, "Image not found")
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to delete image")
	}
}

// ListMedia 列出已记录的上传文件，可按目录过滤
func (a *API) ListMedia(c *gin.Context) {
	assets, err := a.media.List(c.Request.Context(), c.Query("folder"))
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to list images")
		return
	}

	items := make([]mediaResponse, 0, len(assets))
	for _, asset := range assets {
		items = append(items, toMediaResponse(asset))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
