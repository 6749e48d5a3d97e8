package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/retouchlab/internal/content"
	"github.com/retouchlab/internal/service"
)

var errInvalidPrecondition = errors.New("invalid If-Match header")

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

// formatETag renders a section version as a strong entity tag.
func formatETag(version int64) string {
	return strconv.Quote(strconv.FormatInt(version, 10))
}

// parseIfMatch returns the version the caller expects to overwrite. A
// missing header or "*" means the write is unconditional.
func parseIfMatch(header string) (int64, error) {
	value := strings.TrimSpace(header)
	if value == "" || value == "*" {
		return 0, nil
	}
	value = strings.TrimPrefix(value, "W/")
	value = strings.Trim(value, `"`)
	version, err := strconv.ParseInt(value, 10, 64)
	if err != nil || version < 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidPrecondition, header)
	}
	return version, nil
}

// respondContentError maps content service failures to API responses.
func respondContentError(c *gin.Context, err error) {
	var foreign *service.ForeignSectionError
	var invalid *content.ValidationError

	switch {
	case errors.As(err, &foreign):
		c.JSON(http.StatusForbidden, gin.H{
			"error":      fmt.Sprintf("%s is edited on the %s page", foreign.Section, foreign.Owner.Page),
			"redirectTo": foreign.RedirectTo(),
		})
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Content failed validation",
			"fields": invalid.Fields,
		})
	case errors.Is(err, service.ErrUnknownPage):
		respondError(c, http.StatusNotFound, "Unknown page")
	case errors.Is(err, service.ErrSectionNotFound):
		respondError(c, http.StatusNotFound, "Section not found")
	case errors.Is(err, service.ErrVersionConflict):
		respondError(c, http.StatusPreconditionFailed, "Content was changed by someone else")
	case errors.Is(err, service.ErrInvalidContent), errors.Is(err, service.ErrInvalidDocument):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to access content")
	}
}
