package sqlstore

import (
	"errors"

	"github.com/upper/db/v4"
)

func columns(names ...string) []interface{} {
	output := make([]interface{}, len(names))
	for i, name := range names {
		output[i] = name
	}
	return output
}

// isNoRows reports whether a One() lookup failed only because nothing matched
func isNoRows(err error) bool {
	return errors.Is(err, db.ErrNoMoreRows)
}
