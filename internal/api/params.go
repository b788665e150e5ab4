package api

import (
	"strconv"
	"strings"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func pageFrom(c *gin.Context) (domain.Page, error) {
	page := domain.Page{Page: domain.DefaultPage, Limit: domain.DefaultLimit}

	if raw := c.Query("page"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			return domain.Page{}, domain.Validation("page must be a positive integer")
		}
		page.Page = value
	}

	if raw := c.Query("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 || value > domain.MaxLimit {
			return domain.Page{}, domain.Validation("limit must be between 1 and %d", domain.MaxLimit)
		}
		page.Limit = value
	}

	return page, nil
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domain.Validation("%s must be a valid UUID", name)
	}
	return id, nil
}

func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.Validation("%s must be a valid UUID", name)
	}
	return &id, nil
}

func optionalQuery(c *gin.Context, name string) *string {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	return &raw
}

// bindJSON reports malformed or invalid bodies as validation errors.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return domain.Validation("invalid request body: %s", err.Error())
	}
	return nil
}

// principal is only called behind middleware.Authenticate.
func principal(c *gin.Context) domain.Principal {
	p, _ := middleware.PrincipalFrom(c)
	return p
}

func fail(c *gin.Context, err error) {
	middleware.Fail(c, err)
}
