package handler

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/retouchlab/internal/content"
	"github.com/retouchlab/internal/db"
	"github.com/retouchlab/internal/logging"
	"github.com/retouchlab/internal/media"
	"github.com/retouchlab/internal/service"
	"github.com/retouchlab/internal/store"
	"gorm.io/gorm"
)

type testEnv struct {
	api       *API
	router    *gin.Engine
	db        *gorm.DB
	uploadDir string
}

type envOptions struct {
	auth     bool
	maxBytes int64
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(fmt.Sprintf("file:handler_%d?mode=memory&cache=shared", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	uploadDir := t.TempDir()
	host, err := media.NewLocalHost(uploadDir, "/static/uploads")
	if err != nil {
		t.Fatalf("failed to create media host: %v", err)
	}

	logger := logging.Discard()
	contentService := service.NewContentService(store.NewSQLStore(gdb), content.MustLoadDefaults(), logger)
	api := NewAPI(Options{
		Content:     contentService,
		Media:       service.NewMediaService(gdb, host, opts.maxBytes, logger),
		Users:       service.NewUserService(gdb),
		SiteName:    "Test Studio",
		AuthEnabled: opts.auth,
		Logger:      logger,
	})

	router := gin.New()
	router.Use(sessions.Sessions("retouchlab_session", cookie.NewStore([]byte("test-secret"))))
	router.NoRoute(api.NotFound)

	router.GET("/", api.ShowHome)
	router.GET("/about", api.ShowAbout)
	router.GET("/services", api.ShowServices)
	router.GET("/pricing", api.ShowPricing)
	router.GET("/portfolio", api.ShowPortfolio)
	router.GET("/team", api.ShowTeam)
	router.GET("/how-it-works", api.ShowHowItWorks)
	router.GET("/contact", api.ShowContact)
	router.GET("/blog", api.ShowBlog)
	router.GET("/blog/:slug", api.ShowArticle)

	router.GET("/admin/login", api.ShowLoginPage)
	router.POST("/admin/login", api.Login)
	router.GET("/admin/logout", api.Logout)
	router.GET("/admin/dashboard", AuthRequired(opts.auth), api.ShowDashboard)

	router.GET("/api/content/:page", api.GetContent)
	protected := router.Group("/api", AuthRequired(opts.auth))
	protected.PUT("/content/:page", api.PutContent)
	for _, method := range []string{http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions} {
		router.Handle(method, "/api/content/:page", ContentMethodNotAllowed)
	}
	protected.POST("/upload", api.UploadImage)
	protected.POST("/upload/image", api.UploadImage)
	protected.GET("/media", api.ListMedia)
	protected.DELETE("/media/*url", api.DeleteMedia)

	return &testEnv{api: api, router: router, db: gdb, uploadDir: uploadDir}
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) putJSON(t *testing.T, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	if headers == nil {
		headers = map[string]string{}
	}
	headers["Content-Type"] = "application/json"
	return e.do(t, http.MethodPut, target, strings.NewReader(body), headers)
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func multipartBody(t *testing.T, field, filename string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}
