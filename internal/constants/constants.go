// Package constants defines shared application constants.
package constants

const (
	// DefaultPage is the first page of paginated listings.
	DefaultPage = 1

	// DefaultPageSize is the page size used when per_page is absent or invalid.
	DefaultPageSize = 10

	// MaxPageSize caps the per_page query parameter.
	MaxPageSize = 100

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// MaxTitleLength caps task titles, matching the column width.
	MaxTitleLength = 150

	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"
)
