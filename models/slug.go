package models

import "github.com/gosimple/slug"

// Slugify derives a URL-safe, lowercase, hyphenated identifier from a title
// or name. Re-slugifying an existing slug returns the same string.
func Slugify(text string) string {
	return slug.Make(text)
}
