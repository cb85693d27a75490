package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"resolver-wizard/internal/common"
)

// Diagnostics holds the errors and warnings collected while converting a
// resolver configuration.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Path is the dotted location inside the configuration (empty for the root).
	Path string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

// Codes shared by the packages that report diagnostics.
const (
	CodeUnknownProperty   = "unknown_property"
	CodeNotAnObject       = "not_an_object"
	CodeNotAScalar        = "not_a_scalar"
	CodeTypeMismatch      = "type_mismatch"
	CodeInvalidValue      = "invalid_value"
	CodeInvalidMap        = "invalid_map"
	CodeUpstreamInConfig  = "upstream_in_config"
	CodeUnknownGrpcMethod = "unknown_grpc_method"
	CodeLegacyValue       = "legacy_value"
	CodeUnknownType       = "unknown_type"
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, path string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Path:     path,
	})
}

// AddWarning adds a warning diagnostic, optionally with suggestions.
func (d *Diagnostics) AddWarning(code, message, path string, suggestions ...string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:    SeverityWarning,
		Code:        code,
		Message:     message,
		Path:        path,
		Suggestions: suggestions,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return d != nil && len(d.Errors) > 0
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return d != nil && len(d.Warnings) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Error returns a combined error from all error diagnostics, or nil if there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.Message)
	}

	return errors.New(strings.Join(parts, "\n"))
}

// Summary joins the warning messages into a single banner text.
func (d *Diagnostics) Summary() string {
	if !d.HasWarnings() {
		return ""
	}

	parts := make([]string, 0, len(d.Warnings))
	for _, w := range d.Warnings {
		parts = append(parts, w.String())
	}

	return strings.Join(parts, "\n")
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Path != "" {
		msg = fmt.Sprintf("%s: %s", d.Path, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", strings.Join(d.Suggestions, `", "`))
	}

	return msg
}
