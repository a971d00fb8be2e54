package util

import (
	"strconv"
)

// ParseId parses a path id. Ids that cannot exist are reported as not found.
func ParseId(val string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id < 1 {
		return 0, &NotFoundHTTPErr
	}
	return id, nil
}
