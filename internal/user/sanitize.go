package user

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var namePolicy = bluemonday.StrictPolicy()

// SanitizeName strips markup and control bytes from a display name.
// Entities escaped by the policy are decoded back so "Tom & Jerry" survives.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")
	name = html.UnescapeString(namePolicy.Sanitize(name))
	return strings.Join(strings.Fields(name), " ")
}
