// Package social implements the relationship and engagement core: follow
// edges between users, like edges on reviews, review comments, and the
// best-effort notification side channel they all share.
package social

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func paginate(page, limit int, total int64) Pagination {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// IsUniqueViolation reports whether err is the store rejecting a duplicate
// key. The engines' existence pre-checks are read-then-write and therefore
// racy; this mapping is the authoritative conflict detector (the translated
// gorm error when the driver supports it, message sniffing otherwise).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
