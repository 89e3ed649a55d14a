package problem

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Responder sends Problem Details responses.
type Responder struct {
	// BaseURI is prepended to problem type URIs if they are relative.
	BaseURI string
}

// NewResponder creates a new problem responder with optional base URI.
func NewResponder(baseURI string) *Responder {
	return &Responder{BaseURI: baseURI}
}

// DefaultResponder uses relative URIs for problem types.
var DefaultResponder = NewResponder("")

// Respond sends a Detail response with proper content type.
func (r *Responder) Respond(c *gin.Context, detail Detail) {
	if r.BaseURI != "" && len(detail.Type) > 0 && detail.Type[0] == '/' {
		detail.Type = r.BaseURI + detail.Type
	}
	if detail.Instance == "" {
		detail.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(detail.Status, detail)
}

// RespondError converts a standard error to a Detail and responds.
// It checks if the error is already a Detail, otherwise wraps it.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var detail Detail
	if errors.As(err, &detail) {
		r.Respond(c, detail)
		return
	}
	// Default to internal server error for unknown errors
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, detail Detail) {
	DefaultResponder.Respond(c, detail)
}

// RespondError is a convenience function using the default responder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

// ErrorMapper maps domain/application errors to a Detail.
type ErrorMapper func(err error) (Detail, bool)

// ChainedResponder supports custom error mapping.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder creates a responder with custom error mappers.
func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(baseURI),
		mappers:   mappers,
	}
}

// RespondError tries each mapper before falling back to default handling.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if detail, ok := mapper(err); ok {
			r.Respond(c, detail)
			return
		}
	}
	r.Responder.RespondError(c, err)
}

// HTTPStatusFromError extracts HTTP status from an error if possible.
func HTTPStatusFromError(err error) int {
	var detail Detail
	if errors.As(err, &detail) {
		return detail.Status
	}
	return http.StatusInternalServerError
}
