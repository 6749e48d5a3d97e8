package handler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/retouchlab/internal/service"
	"github.com/retouchlab/internal/view"
	"github.com/sirupsen/logrus"
	g "maragu.dev/gomponents"
)

// Options carries the services shared by the HTTP handlers.
type Options struct {
	Content     *service.ContentService
	Blog        *service.BlogService
	Media       *service.MediaService
	Users       *service.UserService
	SiteName    string
	AuthEnabled bool
	Logger      logrus.FieldLogger
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	content     *service.ContentService
	blog        *service.BlogService
	media       *service.MediaService
	users       *service.UserService
	siteName    string
	authEnabled bool
	log         logrus.FieldLogger
}

// NewAPI constructs a handler set with shared services.
func NewAPI(opts Options) *API {
	siteName := strings.TrimSpace(opts.SiteName)
	if siteName == "" {
		siteName = "RetouchLab"
	}
	blog := opts.Blog
	if blog == nil && opts.Content != nil {
		blog = service.NewBlogService(opts.Content)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &API{
		content:     opts.Content,
		blog:        blog,
		media:       opts.Media,
		users:       opts.Users,
		siteName:    siteName,
		authEnabled: opts.AuthEnabled,
		log:         logger,
	}
}

// AuthEnabled reports whether admin routes require a session.
func (a *API) AuthEnabled() bool {
	return a.authEnabled
}

func (a *API) pageConfig(c *gin.Context, title, description string) view.PageConfig {
	return view.PageConfig{
		Title:       title,
		Description: description,
		SiteName:    a.siteName,
		Path:        c.Request.URL.Path,
	}
}

// render writes a gomponents node as the HTML response.
func (a *API) render(c *gin.Context, status int, node g.Node) {
	var buf bytes.Buffer
	if err := view.Render(&buf, node); err != nil {
		a.log.WithError(err).WithField("path", c.Request.URL.Path).Error("render page")
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
