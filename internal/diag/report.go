package diag

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/babelc/babelc/internal/ast"
)

// Report is the canonical structured error value returned by every pass.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Pos     *ast.Pos       `json:"pos,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// ReportError wraps a Report as a Go error so it survives errors.As
// unwrapping across pass boundaries.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return fmt.Sprintf("%s: %s", e.Rep.Code, e.Rep.Message)
}

// AsReport extracts a *Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// New builds a ReportError ready to return from a pass.
func New(code, phase, message string) error {
	return &ReportError{Rep: &Report{
		Schema:  "babelc.error/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Data:    map[string]any{},
	}}
}

// Newf is New with fmt.Sprintf-style formatting of message.
func Newf(code, phase, format string, args ...any) error {
	return New(code, phase, fmt.Sprintf(format, args...))
}

// WithPos attaches a source position to a report-backed error, if err
// wraps one.
func WithPos(err error, pos ast.Pos) error {
	if rep, ok := AsReport(err); ok {
		p := pos
		rep.Pos = &p
	}
	return err
}

// WithData attaches a key/value pair to a report-backed error's Data map.
func WithData(err error, key string, value any) error {
	if rep, ok := AsReport(err); ok {
		rep.Data[key] = value
	}
	return err
}

// ToJSON renders the report deterministically (Go's encoding/json sorts
// map keys and preserves struct field order).
func (r *Report) ToJSON(indent bool) (string, error) {
	var data []byte
	var err error
	if indent {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = json.Marshal(r)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
