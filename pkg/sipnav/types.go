package sipnav

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Envelope is the uniform response wrapper every SIPNAV endpoint uses:
// {"success": bool, "message": string, "data": <any>}. Some endpoints also
// carry an "errors" member with additional detail. Success is a pointer so
// bodies without the field (raw payloads) are distinguishable from explicit
// failures.
type Envelope struct {
	Success *bool           `json:"success,omitempty" yaml:"success,omitempty"`
	Message string          `json:"message,omitempty" yaml:"message,omitempty"`
	Errors  json.RawMessage `json:"errors,omitempty"  yaml:"errors,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"    yaml:"data,omitempty"`
}

// Failed reports whether the envelope explicitly carries success=false.
func (e *Envelope) Failed() bool {
	return e.Success != nil && !*e.Success
}

// ErrorDetails flattens the "errors" member into a display string. A JSON
// string is unquoted; anything else is returned as compact JSON.
func (e *Envelope) ErrorDetails() string {
	if len(e.Errors) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(e.Errors, &detail); err == nil {
		return detail
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, e.Errors); err != nil {
		return string(e.Errors)
	}

	return buf.String()
}

// Page represents the paginated variant nested inside an envelope's data:
// {"current_page","data","total","per_page","last_page"}.
type Page[T any] struct {
	CurrentPage int   `json:"current_page" yaml:"current_page"`
	Data        []T   `json:"data"         yaml:"data"`
	Total       int   `json:"total"        yaml:"total"`
	PerPage     IntOr `json:"per_page"     yaml:"per_page"`
	LastPage    int   `json:"last_page"    yaml:"last_page"`
}

// HasMore reports whether pages remain after the current one.
func (p *Page[T]) HasMore() bool {
	return p.CurrentPage < p.LastPage
}

// IntOr decodes a JSON number or a numeric string. The platform returns
// per_page as a string on some endpoints.
type IntOr int

// UnmarshalJSON implements json.Unmarshaler.
func (i *IntOr) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = 0

		return nil
	}

	value, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}

	*i = IntOr(value)

	return nil
}

// Int returns the plain int value.
func (i IntOr) Int() int {
	return int(i)
}

// SessionSource identifies how an auth session was issued.
type SessionSource string

const (
	// IssuedViaLogin marks sessions from a username/password login or a
	// static API key.
	IssuedViaLogin SessionSource = "login"

	// IssuedViaOTP marks sessions obtained through two-factor verification.
	IssuedViaOTP SessionSource = "otp"

	// IssuedViaProxy marks admin proxy sessions acting as another user.
	IssuedViaProxy SessionSource = "proxy"
)

// Session is the immutable auth state owned by a client: a bearer token plus
// identity metadata. Re-authentication and proxy transitions replace the
// whole value, never individual fields.
type Session struct {
	Token     string        `json:"token"     yaml:"token"`
	Username  string        `json:"username"  yaml:"username"`
	IssuedVia SessionSource `json:"issued_via" yaml:"issued_via"`
}
