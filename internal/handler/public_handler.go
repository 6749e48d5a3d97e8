package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/retouchlab/internal/content"
	"github.com/retouchlab/internal/service"
	"github.com/retouchlab/internal/view"
)

// decodePage maps a page document onto a view struct whose JSON tags name
// the document sections.
func decodePage[T any](doc content.Document) (T, error) {
	var out T
	raw, err := json.Marshal(doc)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode page document: %w", err)
	}
	return out, nil
}

func loadPage[T any](a *API, c *gin.Context, page string) (T, bool) {
	var zero T
	doc, err := a.content.GetDocument(c.Request.Context(), page)
	if err != nil {
		a.renderPageError(c, err)
		return zero, false
	}
	data, err := decodePage[T](doc)
	if err != nil {
		a.renderPageError(c, err)
		return zero, false
	}
	return data, true
}

func loadSection[T any](a *API, c *gin.Context, page, section string) (T, bool) {
	var zero T
	value, err := a.content.GetSection(c.Request.Context(), page, section)
	if err != nil {
		a.renderPageError(c, err)
		return zero, false
	}
	data, err := content.Decode[T](value.Data)
	if err != nil {
		a.renderPageError(c, fmt.Errorf("decode %s.%s: %w", page, section, err))
		return zero, false
	}
	return data, true
}

func (a *API) renderPageError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUnknownPage) || errors.Is(err, service.ErrArticleNotFound) {
		a.render(c, http.StatusNotFound, view.NotFoundPage(a.pageConfig(c, "", ""), ""))
		return
	}
	_ = c.Error(err)
	a.log.WithError(err).WithField("path", c.Request.URL.Path).Error("render public page")
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

func (a *API) ShowHome(c *gin.Context) {
	data, ok := loadPage[view.HomeData](a, c, content.PageHome)
	if !ok {
		return
	}
	a.render(c, http.StatusOK, view.HomePage(a.pageConfig(c, "", data.Banner.Description), data))
}

func (a *API) ShowAbout(c *gin.Context) {
	data, ok := loadPage[view.AboutData](a, c, content.PageAbout)
	if !ok {
		return
	}
	a.render(c, http.StatusOK, view.AboutPage(a.pageConfig(c, data.Hero.Title, data.Hero.Subtitle), data))
}

func (a *API) ShowServices(c *gin.Context) {
	data, ok := loadPage[view.ServicesData](a, c, content.PageServices)
	if !ok {
		return
	}
	a.render(c, http.StatusOK, view.ServicesPage(a.pageConfig(c, data.Hero.Title, data.Hero.Subtitle), data))
}

func (a *API) ShowPricing(c *gin.Context) {
	data, ok := loadPage[view.PricingData](a, c, content.PagePricing)
	if !ok {
		return
	}
	a.render(c, http.StatusOK, view.PricingPage(a.pageConfig(c, data.Hero.Title, data.Hero.Subtitle), data))
}

func (a *API) ShowPortfolio(c *gin.Context) {
	data, ok := loadPage[view.PortfolioData](a, c, content.PagePortfolio)
	if !ok {
		return
	}
	data.Filter = strings.TrimSpace(c.Query("category"))
	a.render(c, http.StatusOK, view.PortfolioPage(a.pageConfig(c, data.Hero.Title, data.Hero.Subtitle), data))
}

func (a *API) ShowTeam(c *gin.Context) {
	data, ok := loadPage[view.TeamData](a, c, content.PageTeams)
	if !ok {
		return
	}
	a.render(c, http.StatusOK, view.TeamPage(a.pageConfig(c, data.Hero.Title, data.Hero.Subtitle), data))
}

func (a *API) ShowHowItWorks(c *gin.Context) {
	data, ok := loadPage[view.HowItWorksData](a, c, content.PageHowItWorks)
	if !ok {
		return
	}
	a.render(c, http.StatusOK, view.HowItWorksPage(a.pageConfig(c, data.Hero.Title, data.Hero.Subtitle), data))
}

func (a *API) ShowContact(c *gin.Context) {
	data, ok := loadPage[view.ContactData](a, c, content.PageContactInfo)
	if !ok {
		return
	}
	a.render(c, http.StatusOK, view.ContactPage(a.pageConfig(c, "Contact", ""), data))
}

// ShowBlog lists articles newest first using the blog page settings.
func (a *API) ShowBlog(c *gin.Context) {
	hero, ok := loadSection[content.Hero](a, c, content.PageBlogSettings, "hero")
	if !ok {
		return
	}
	settings, ok := loadSection[content.BlogSettings](a, c, content.PageBlogSettings, "settings")
	if !ok {
		return
	}
	articles, err := a.blog.Articles(c.Request.Context())
	if err != nil {
		a.renderPageError(c, err)
		return
	}

	data := view.BlogData{Hero: hero, Settings: settings, Articles: articles}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		data.Articles = nil
		for _, article := range articles {
			if strings.EqualFold(article.Category, category) {
				data.Articles = append(data.Articles, article)
			}
		}
	}
	a.render(c, http.StatusOK, view.BlogPage(a.pageConfig(c, hero.Title, hero.Subtitle), data))
}

func (a *API) ShowArticle(c *gin.Context) {
	article, err := a.blog.ArticleBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		a.renderPageError(c, err)
		return
	}
	settings, ok := loadSection[content.BlogSettings](a, c, content.PageBlogSettings, "settings")
	if !ok {
		return
	}

	data := view.ArticleData{Article: article.Article, HTML: article.HTML, Settings: settings}
	a.render(c, http.StatusOK, view.ArticlePage(a.pageConfig(c, article.Title, article.Excerpt), data))
}

// NotFound answers unmatched routes with JSON for API callers and a page
// otherwise.
func (a *API) NotFound(c *gin.Context) {
	if isAPIRequest(c) {
		respondError(c, http.StatusNotFound, "Not found")
		return
	}
	a.render(c, http.StatusNotFound, view.NotFoundPage(a.pageConfig(c, "", ""), ""))
}
