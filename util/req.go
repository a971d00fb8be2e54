package util

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/logging"
)

var log = logging.NewPackageLogger("util")

type HTTPError struct {
	Status  int
	Message string
	// Err is the underlying cause, logged but never shown to the client
	Err error
}

func (he *HTTPError) Error() string {
	if he.Err != nil {
		return fmt.Sprintf("%v (statusCode=%v): %v", he.Message, he.Status, he.Err)
	}
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

func (he *HTTPError) Unwrap() error {
	return he.Err
}

var (
	NotFoundHTTPErr = HTTPError{
		Message: "404 page not found",
		Status:  http.StatusNotFound,
	}
	MalformedFormHTTPErr = HTTPError{
		Message: "malformed form",
		Status:  http.StatusBadRequest,
	}
)

func BuildNotFoundHTTPErr(what string) *HTTPError {
	return &HTTPError{
		Message: NotFoundHTTPErr.Message,
		Status:  http.StatusNotFound,
		Err:     fmt.Errorf("%v not found", what),
	}
}

func BuildDbHTTPErr(err error) *HTTPError {
	log.Error().Err(err).Str(logging.EVENT, "db_error").Msg("database error occurred")
	return &HTTPError{
		Message: "database error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func BuildInternalHTTPErr(err error, message string) *HTTPError {
	log.Error().Err(err).Msg(message)
	return &HTTPError{
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func BuildFormBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Message: MalformedFormHTTPErr.Message,
		Status:  MalformedFormHTTPErr.Status,
		Err:     err,
	}
}

type HandlerOpts struct {
	// AbortOnErr stops the remaining handlers in the chain after an error response
	AbortOnErr bool
}

// HandlerWrapper adapts a handler that writes its own successful response and
// reports failure as an *HTTPError
func HandlerWrapper(handler func(c *gin.Context) *HTTPError, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := handler(c); err != nil {
			_ = c.Error(err)
			HandleHTTPErrorRes(c, err)
			if opts != nil && opts.AbortOnErr {
				c.Abort()
			}
		}
	}
}

/*
HandleHTTPErrorRes handles creating the appropriate response for the HTTP error.
break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	c.String(err.Status, err.Message)
}
