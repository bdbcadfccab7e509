package hijack

import (
	"github.com/arthur-debert/jackman/pkg/errors"
)

// CheckLengths fails on the first token longer than limit bytes.
// If this trips, the rule table needs to learn the argument shape.
func CheckLengths(tokens []string, limit int) error {
	for i, token := range tokens {
		if len(token) <= limit {
			continue
		}
		return errors.Newf(errors.ErrArgTooLong,
			"argument %q is %d bytes long, max: %d", token, len(token), limit).
			WithDetail("index", i).
			WithDetail("length", len(token)).
			WithDetail("max", limit)
	}
	return nil
}
