// Package cargoerr provides structured error types for cargo-go.
// Errors carry enough context to be printed with a hint by the CLI's
// error reporter without losing the underlying cause.
package cargoerr

// Category classifies an error along the lines cargo-go's operations fail.
type Category string

const (
	CategoryUsage        Category = "usage"
	CategoryResolution   Category = "resolution"
	CategoryTransport    Category = "transport"
	CategoryVerification Category = "verification"
	CategoryCatalog      Category = "catalog"
	CategoryParse        Category = "parse"
	CategoryFilesystem   Category = "filesystem"
)

// Code is a machine-readable error code.
type Code string

const (
	// Usage errors (E1xx)
	CodeBadArgs        Code = "E101"
	CodeAmbiguousName  Code = "E102"
	CodeUnknownCommand Code = "E103"

	// Resolution errors (E2xx)
	CodeCyclicDependency  Code = "E201"
	CodeMissingDependency Code = "E202"
	CodeNoSourceFound     Code = "E203"
	CodeNoVersionMatch    Code = "E204"

	// Transport errors (E3xx)
	CodeTransportFailed Code = "E301"
	CodeHTTPError       Code = "E302"
	CodeGitFailed       Code = "E303"

	// Verification errors (E4xx)
	CodeSignatureMissing Code = "E401"
	CodeSignatureInvalid Code = "E402"
	CodeUntrustedKey     Code = "E403"

	// Catalog errors (E5xx)
	CodeCatalogLocked    Code = "E501"
	CodeSourceNotFound   Code = "E502"
	CodePackageNotFound  Code = "E503"
	CodeDuplicateSource  Code = "E504"

	// Parse errors (E6xx)
	CodeCatalogParse  Code = "E601"
	CodeManifestParse Code = "E602"

	// Filesystem errors (E7xx)
	CodePathError Code = "E701"
)

// Error is cargo-go's structured error type.
type Error struct {
	Category Category       `json:"category"`
	Code     Code           `json:"code,omitempty"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
	Hint     string         `json:"hint,omitempty"`
	Cause    error          `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error, by code when both have
// one, otherwise by category and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Code != "" && t.Code != "" {
		return e.Code == t.Code
	}
	return e.Category == t.Category && e.Message == t.Message
}

// WithHint sets the hint and returns the error for chaining.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithDetail adds a detail and returns the error for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCode sets the code and returns the error for chaining.
func (e *Error) WithCode(code Code) *Error {
	e.Code = code
	return e
}

// New creates a new Error with the given category and message.
func New(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(category Category, message string, cause error) *Error {
	return &Error{Category: category, Message: message, Cause: cause}
}
