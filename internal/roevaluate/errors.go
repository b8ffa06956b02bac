package roevaluate

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"roeval/lib/htmlutil"
)

var (
	// ErrTemplateNotFound is returned when a service description does not
	// contain a checklist template.
	ErrTemplateNotFound = errors.New("checklist template not found in service description")
	// ErrEmptyExpansion is returned when the template expansion endpoint
	// responds with an empty body.
	ErrEmptyExpansion = errors.New("template expansion returned an empty uri")
	// ErrEmptyBody is returned when an evaluation result has no content.
	ErrEmptyBody = errors.New("evaluation result is empty")
)

// HTTPError is returned when the service responds with a non-2xx status.
type HTTPError struct {
	Step       Step
	Method     string
	URL        string
	StatusCode int
	Status     string
	// Summary is a single line taken from the response body, it may be empty.
	Summary string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s: %s %s: %s", e.Step, e.Method, e.URL, e.Status)
	if e.Summary != "" {
		msg += ": " + e.Summary
	}
	return msg
}

// ContentTypeError is returned when an evaluation result is not in the media
// type that was requested.
type ContentTypeError struct {
	Step      Step
	Requested string
	Got       string
}

func (e *ContentTypeError) Error() string {
	got := e.Got
	if got == "" {
		got = "no content-type"
	}
	return fmt.Sprintf("%s: requested %s but got %s", e.Step, e.Requested, got)
}

// HostMismatchError is returned when a uri points somewhere other than the
// service and external hosts are not allowed.
type HostMismatchError struct {
	URI     string
	Service string
}

func (e *HostMismatchError) Error() string {
	return fmt.Sprintf("uri %s is not on the service host %s (allow external hosts to follow it)", e.URI, e.Service)
}

// ExpansionError is returned when the template expansion endpoint responds
// with something that is not a uri.
type ExpansionError struct {
	Raw string
	Err error
}

func (e *ExpansionError) Error() string {
	return fmt.Sprintf("template expansion returned an invalid uri %q: %s", e.Raw, e.Err)
}

func (e *ExpansionError) Unwrap() error {
	return e.Err
}

const maxSummaryLength = 200

// summarizeBody picks a single line out of an error response to show the user.
func summarizeBody(contentType string, body []byte) string {
	mediaType, _, _ := mime.ParseMediaType(contentType)

	var summary string
	switch mediaType {
	case "text/html", "application/xhtml+xml":
		summary = htmlutil.PageSummary(body)
	default:
		for _, line := range strings.Split(string(body), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				summary = line
				break
			}
		}
	}

	if runes := []rune(summary); len(runes) > maxSummaryLength {
		summary = string(runes[:maxSummaryLength]) + "..."
	}
	return summary
}
