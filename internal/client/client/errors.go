package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
)

// Kind discriminates API failures.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindUnauthorized Kind = "unauthorized"
	KindValidation   Kind = "validation"
	KindHTTP         Kind = "http"
)

const (
	msgUnreachable   = "cannot reach the server, check that the backend is running"
	msgBadErrorBody  = "error communicating with the server"
	msgInvalidResult = "invalid response from the server"
)

// Error is returned by every HTTPClient call that fails.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Fields holds per-field messages of a validation failure.
	Fields map[string][]string
	Err    error

	order []string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets callers match an Error against the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindNetwork
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrValidation:
		return e.Kind == KindValidation
	}
	return false
}

// Summary is the first message of the first field the server reported, or
// Message when there are no field errors.
func (e *Error) Summary() string {
	for _, f := range e.order {
		if msgs := e.Fields[f]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	return e.Message
}

// FieldOrder lists the field names in the order the server sent them.
func (e *Error) FieldOrder() []string {
	return append([]string(nil), e.order...)
}

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// NewValidationError builds a validation failure. order lists the field
// names in reporting order; fields missing from it follow in map order.
func NewValidationError(message string, fields map[string][]string, order ...string) *Error {
	e := &Error{Kind: KindValidation, Status: 422, Message: message, Fields: fields}
	seen := map[string]bool{}
	for _, f := range order {
		if _, ok := fields[f]; ok && !seen[f] {
			e.order = append(e.order, f)
			seen[f] = true
		}
	}
	for f := range fields {
		if !seen[f] {
			e.order = append(e.order, f)
		}
	}
	return e
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: msgUnreachable, Err: err}
}

type errorBody struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// parseErrorResponse maps a non-2xx response to an *Error.
func parseErrorResponse(status int, body []byte) *Error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		eb = errorBody{Message: msgBadErrorBody}
	}

	if status == 401 {
		return &Error{Kind: KindUnauthorized, Status: status, Message: fallbackMessage(eb.Message, status), Err: ErrUnauthorized}
	}

	if status == 422 && hasValue(eb.Errors) {
		fields, order, err := decodeFieldErrors(eb.Errors)
		if err == nil {
			return &Error{
				Kind:    KindValidation,
				Status:  status,
				Message: eb.Message,
				Fields:  fields,
				order:   order,
			}
		}
	}

	return &Error{Kind: KindHTTP, Status: status, Message: fallbackMessage(eb.Message, status)}
}

func fallbackMessage(msg string, status int) string {
	if msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

func hasValue(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && !bytes.Equal(t, []byte("null")) && !bytes.Equal(t, []byte("false"))
}

// decodeFieldErrors reads {"field": ["msg", ...], ...} keeping key order. A
// bare string value is accepted as a single message.
func decodeFieldErrors(raw json.RawMessage) (map[string][]string, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("errors is not an object")
	}

	fields := map[string][]string{}
	var order []string

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}

		var msgs []string
		if err := json.Unmarshal(value, &msgs); err != nil {
			var single string
			if err := json.Unmarshal(value, &single); err != nil {
				return nil, nil, fmt.Errorf("field %s: %w", key, err)
			}
			msgs = []string{single}
		}

		if _, seen := fields[key]; !seen {
			order = append(order, key)
		}
		fields[key] = msgs
	}

	return fields, order, nil
}
