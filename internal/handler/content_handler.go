package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const allowedContentMethods = "GET, PUT"

// GetContent serves a whole page document, or one section when the
// section query parameter is present.
func (a *API) GetContent(c *gin.Context) {
	page := c.Param("page")
	ctx := c.Request.Context()

	if section, ok := c.GetQuery("section"); ok {
		value, err := a.content.GetSection(ctx, page, section)
		if err != nil {
			respondContentError(c, err)
			return
		}
		if value.Owner == nil {
			c.Header("ETag", formatETag(value.Version))
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", value.Data)
		return
	}

	doc, err := a.content.GetDocument(ctx, page)
	if err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// PutContent replaces one section, or the whole document when no section
// is named.
func (a *API) PutContent(c *gin.Context) {
	page := c.Param("page")
	ctx := c.Request.Context()

	body, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	section, ok := c.GetQuery("section")
	if !ok {
		doc, err := a.content.PutDocument(ctx, page, body)
		if err != nil {
			respondContentError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Content updated successfully", "data": doc})
		return
	}

	expected, err := parseIfMatch(c.GetHeader("If-Match"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	value, err := a.content.PutSection(ctx, page, section, body, expected)
	if err != nil {
		respondContentError(c, err)
		return
	}
	a.log.WithFields(logrus.Fields{
		"page":    page,
		"section": section,
		"version": value.Version,
	}).Info("content section updated")

	c.Header("ETag", formatETag(value.Version))
	c.JSON(http.StatusOK, gin.H{"message": "Content updated successfully", "data": value.Data})
}

// ContentMethodNotAllowed answers every verb the content API does not serve.
func ContentMethodNotAllowed(c *gin.Context) {
	c.Header("Allow", allowedContentMethods)
	respondError(c, http.StatusMethodNotAllowed, "Method "+c.Request.Method+" not allowed")
}
