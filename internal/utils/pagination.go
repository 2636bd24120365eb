package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// NewPaginationParams computes the offset for a 1-indexed page.
func NewPaginationParams(page, pageSize int) PaginationParams {
	if page < constants.MinPage {
		page = constants.DefaultPage
	}
	if pageSize < constants.MinPageSize {
		pageSize = constants.DefaultPageSize
	}
	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// GetPaginationParams extracts page and pageSize from the query string.
// Missing values take the defaults; non-numeric or values below 1 are rejected.
func GetPaginationParams(c *gin.Context) (PaginationParams, error) {
	page, err := queryInt(c, "page", constants.DefaultPage, constants.MinPage)
	if err != nil {
		return PaginationParams{}, err
	}
	pageSize, err := queryInt(c, "pageSize", constants.DefaultPageSize, constants.MinPageSize)
	if err != nil {
		return PaginationParams{}, err
	}

	return NewPaginationParams(page, pageSize), nil
}

func queryInt(c *gin.Context, key string, defaultValue, min int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	if v < min {
		return 0, fmt.Errorf("%s must not be less than %d", key, min)
	}
	return v, nil
}
