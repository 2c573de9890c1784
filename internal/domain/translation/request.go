package translation

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/plateful/dishq/internal/domain"
)

// DefaultMaxInputLength is the default cap on request text, in code points.
const DefaultMaxInputLength = 2000

// UnknownIdentity is the shared bucket for clients with no determinable address.
const UnknownIdentity = "unknown"

// Request is a validated translation request. Constructed per call, never persisted.
type Request struct {
	rawText  string
	identity string
}

// New validates the raw text and builds a request.
// maxLength <= 0 falls back to DefaultMaxInputLength.
// An empty identity collapses into the shared "unknown" bucket.
func New(rawText, identity string, maxLength int) (Request, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxInputLength
	}
	if err := Validate(rawText, maxLength); err != nil {
		return Request{}, err
	}
	if identity == "" {
		identity = UnknownIdentity
	}
	return Request{rawText: rawText, identity: identity}, nil
}

// RawText returns the untouched request text.
func (r Request) RawText() string { return r.rawText }

// Identity returns the rate-limiter bucket for this request.
func (r Request) Identity() string { return r.identity }

// Validate checks untrusted text before anything costs money or quota.
// Rejects empty/whitespace-only text, text over maxLength code points,
// and text containing only control characters. Side-effect-free.
func Validate(text string, maxLength int) error {
	if text == "" {
		return fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(text); n > maxLength {
		return fmt.Errorf("%w: text exceeds maximum length of %d characters", domain.ErrInvalidInput, maxLength)
	}
	printable := false
	for _, r := range text {
		if unicode.IsControl(r) {
			continue
		}
		if !unicode.IsSpace(r) {
			printable = true
			break
		}
	}
	if !printable {
		return fmt.Errorf("%w: text must contain printable characters", domain.ErrInvalidInput)
	}
	return nil
}
