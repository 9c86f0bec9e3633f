package todo

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vilmarcabanero/nx-starter-sub001/internal/domain"
)

// Title length bounds, applied after trimming surrounding whitespace.
const (
	minTitleLength = 2
	maxTitleLength = 255
)

// Title is a normalized non-empty string value object. Construction through
// NewTitle is the only way to obtain a valid instance; equality is value
// equality on the normalized string.
type Title struct {
	value string
}

// NewTitle validates and normalizes a raw title. The input is trimmed, then
// must be between 2 and 255 characters. Lengths are counted in runes, not
// bytes, so multibyte titles are measured the same as ASCII ones.
func NewTitle(raw string) (Title, error) {
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "":
		return Title{}, domain.NewValidationError(domain.CodeInvalidTitle,
			"title must not be empty")
	case utf8.RuneCountInString(trimmed) < minTitleLength:
		return Title{}, domain.NewValidationError(domain.CodeTitleTooShort,
			fmt.Sprintf("title must be at least %d characters", minTitleLength))
	case utf8.RuneCountInString(trimmed) > maxTitleLength:
		return Title{}, domain.NewValidationError(domain.CodeTitleTooLong,
			fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}

	return Title{value: trimmed}, nil
}

// String implements fmt.Stringer and returns the normalized value.
func (t Title) String() string {
	return t.value
}

// IsZero reports whether the title is the zero value (never produced by NewTitle).
func (t Title) IsZero() bool {
	return t.value == ""
}
