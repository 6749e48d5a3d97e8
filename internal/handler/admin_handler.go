package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/retouchlab/internal/content"
	"github.com/retouchlab/internal/service"
	"github.com/retouchlab/internal/view"
)

const (
	sessionUserID   = "user_id"
	sessionUsername = "username"
)

// ShowLoginPage renders the admin sign-in form.
func (a *API) ShowLoginPage(c *gin.Context) {
	a.render(c, http.StatusOK, view.LoginPage(a.pageConfig(c, "", ""), "", ""))
}

// Login checks the submitted credentials and starts an admin session.
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := a.users.Authenticate(username, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			_ = c.Error(err)
		}
		a.render(c, http.StatusUnauthorized, view.LoginPage(a.pageConfig(c, "", ""), username, "Invalid username or password"))
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserID, user.ID)
	session.Set(sessionUsername, user.Username)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
		a.render(c, http.StatusInternalServerError, view.LoginPage(a.pageConfig(c, "", ""), username, "Failed to save session"))
		return
	}

	a.log.WithField("username", user.Username).Info("admin signed in")
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout ends the admin session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard lists every page with its stored sections and versions.
func (a *API) ShowDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	sections, err := a.content.ListSections(ctx)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Failed to load content overview")
		return
	}

	data := view.DashboardData{}
	if username, ok := sessions.Default(c).Get(sessionUsername).(string); ok {
		data.Username = username
	}

	defaults := a.content.Defaults()
	for _, page := range content.Pages() {
		entry := view.DashboardPageEntry{Page: page}
		stored := make(map[string]bool)
		for _, value := range sections[page] {
			stored[value.Name] = true
			entry.Sections = append(entry.Sections, view.DashboardSection{Name: value.Name, Version: value.Version})
		}
		for _, name := range defaults.Sections(page) {
			if owner, ok := content.Owner(page, name); ok {
				entry.Sections = append(entry.Sections, view.DashboardSection{Name: name, EditedAt: owner.Path()})
				continue
			}
			if !stored[name] {
				entry.Sections = append(entry.Sections, view.DashboardSection{Name: name})
			}
		}
		for _, name := range content.ForeignSections(page) {
			if _, listed := defaults.Section(page, name); !listed {
				owner, _ := content.Owner(page, name)
				entry.Sections = append(entry.Sections, view.DashboardSection{Name: name, EditedAt: owner.Path()})
			}
		}
		data.Pages = append(data.Pages, entry)
	}

	if a.media != nil {
		assets, err := a.media.List(ctx, "")
		if err != nil {
			_ = c.Error(err)
		}
		for _, asset := range assets {
			data.Assets = append(data.Assets, view.DashboardAsset{
				URL:    asset.URL,
				Folder: asset.Folder,
				Width:  asset.Width,
				Height: asset.Height,
			})
		}
	}

	a.render(c, http.StatusOK, view.DashboardPage(a.pageConfig(c, "", ""), data))
}

// AuthRequired guards admin routes when credentials are configured. API
// callers get a JSON 401, browsers are sent to the login page.
func AuthRequired(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		if sessions.Default(c).Get(sessionUserID) != nil {
			c.Next()
			return
		}
		if isAPIRequest(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
	}
}
