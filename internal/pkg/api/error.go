package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Error represents the Canvas API error response.
type Error struct {
	Status        string        `json:"status,omitempty"`
	Messages      ErrorMessages `json:"errors,omitempty"`
	ErrorReportId int           `json:"error_report_id,omitempty"`
	response      *resty.Response
}

type ErrorMessage struct {
	Message string `json:"message"`
}

// ErrorMessages is polymorphic in the API response:
// a list of messages, or a map "attribute -> messages" for validation errors.
type ErrorMessages []*ErrorMessage

func (v *ErrorMessages) UnmarshalJSON(data []byte) error {
	// List of messages
	var list []*ErrorMessage
	if err := json.Unmarshal(data, &list); err == nil {
		*v = list
		return nil
	}

	// Map "attribute -> messages", from a validation error
	var byAttribute map[string][]*ErrorMessage
	if err := json.Unmarshal(data, &byAttribute); err != nil {
		return err
	}

	attributes := make([]string, 0, len(byAttribute))
	for attribute := range byAttribute {
		attributes = append(attributes, attribute)
	}
	sort.Strings(attributes)

	var out ErrorMessages
	for _, attribute := range attributes {
		for _, message := range byAttribute[attribute] {
			message.Message = fmt.Sprintf("%s: %s", attribute, message.Message)
			out = append(out, message)
		}
	}
	*v = out
	return nil
}

func (e *Error) Error() string {
	req := e.response.Request
	msg := fmt.Sprintf(`%s, method: "%s", url: "%s", httpCode: "%d"`, e.Message(), req.Method, req.URL, e.StatusCode())
	if len(e.Status) > 0 {
		msg += fmt.Sprintf(`, status: "%s"`, e.Status)
	}
	if e.ErrorReportId > 0 {
		msg += fmt.Sprintf(`, errorReportId: "%d"`, e.ErrorReportId)
	}
	return msg
}

// Message joins all messages from the error envelope.
func (e *Error) Message() string {
	var parts []string
	for _, message := range e.Messages {
		if len(message.Message) > 0 {
			parts = append(parts, message.Message)
		}
	}
	if len(parts) == 0 {
		return "unknown error"
	}
	return strings.Join(parts, "; ")
}

func (e *Error) SetResponse(response *resty.Response) {
	e.response = response
}

func (e *Error) StatusCode() int {
	return e.response.StatusCode()
}

func (e *Error) IsBadRequest() bool {
	return e.StatusCode() == http.StatusBadRequest
}

func (e *Error) IsUnauthorized() bool {
	return e.StatusCode() == http.StatusUnauthorized
}

func (e *Error) IsForbidden() bool {
	return e.StatusCode() == http.StatusForbidden
}

func (e *Error) IsNotFound() bool {
	return e.StatusCode() == http.StatusNotFound
}
