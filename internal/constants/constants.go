package constants

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Task derivation defaults, in minutes
const (
	OrderTaskEstimatedMinutes       = 60
	ProductTaskEstimatedMinutes     = 30
	DefaultTemplateEstimatedMinutes = 30
	PlaceholderTaskEstimatedMinutes = 60
)

// ShortOrderIDLength is how many characters of an order id appear in task titles.
const ShortOrderIDLength = 8

// DefaultMutationMaxAttempts bounds retries of a task tree mutation after a version conflict.
const DefaultMutationMaxAttempts = 3

// Gin context keys
const (
	ContextKeyOrder   = "order"
	ContextKeyProduct = "product"
)
