package pathutil

import (
	"errors"
	"strings"
)

// ErrInvalidID is returned when an article ID in the path is malformed.
var ErrInvalidID = errors.New("invalid id")

const maxIDLength = 20

// ArticleID validates a path segment as an article ID.
// Every id in the system is either a static dataset id ("1".."6") or the
// output of entity.DeriveID, an absolute int32 in decimal, so anything else
// cannot resolve and is rejected here. maxIDLength leaves room above the
// 10 digits DeriveID can produce.
//
//	ArticleID("1772899") // "1772899", nil
//	ArticleID("abc")     // "", ErrInvalidID
func ArticleID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" || len(id) > maxIDLength {
		return "", ErrInvalidID
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return "", ErrInvalidID
		}
	}
	return id, nil
}
