package services

import (
	"strconv"
	"strings"

	"github.com/codyseavey/optcg-api/backend/internal/models"
)

const (
	DefaultPageLimit = 25
	MaxPageLimit     = 100
)

// ParseLimit parses the limit query parameter. Missing or malformed values
// fall back to DefaultPageLimit; values above MaxPageLimit are clamped.
// There is no lower clamp: zero or negative limits produce an empty page.
func ParseLimit(raw string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return limit
}

// ParsePage parses the 1-based page query parameter, defaulting to 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate slices items into the requested page. The returned Data is never
// nil so it always encodes as a JSON array.
func Paginate[T any](items []T, page, limit int) models.Page[T] {
	if page < 1 {
		page = 1
	}
	total := len(items)

	totalPages := 1
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	result := models.Page[T]{
		Data:       []T{},
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
	if limit <= 0 || total == 0 {
		return result
	}

	// Compare in page units first so huge page numbers cannot overflow start.
	if page-1 >= (total+limit-1)/limit {
		return result
	}
	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	result.Data = items[start:end]
	return result
}
