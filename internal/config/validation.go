// Package config provides configuration parsing and validation for angle
// gradient documents.
// This file implements validation of raw document values.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/opd-ai/go-anglegradient/internal/render"
)

// maxDimension is the size above which bounds are reported as unusual.
const maxDimension = 10000

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Merge combines another ValidationResult into this one.
func (vr *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	vr.Errors = append(vr.Errors, other.Errors...)
	vr.Warnings = append(vr.Warnings, other.Warnings...)
}

// Validator checks gradient documents.
type Validator struct {
	// strictMode turns warnings into errors.
	strictMode bool
}

// NewValidator creates a new Validator with default settings.
func NewValidator() *Validator {
	return &Validator{}
}

// WithStrictMode enables strict validation where warnings are errors.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// Validate performs validation of a Document.
func (v *Validator) Validate(doc *Document) *ValidationResult {
	result := &ValidationResult{}

	v.validateGeometry(doc, result)
	v.validateStyle(doc, result)
	v.validateStops(doc, result)

	if v.strictMode {
		result.Errors = append(result.Errors, result.Warnings...)
		result.Warnings = nil
	}
	return result
}

func (v *Validator) validateGeometry(doc *Document, result *ValidationResult) {
	if math.IsNaN(doc.Angle) || math.IsInf(doc.Angle, 0) {
		result.AddWarning("angle", fmt.Sprintf("%v is treated as 0", doc.Angle))
	}
	if doc.Direction != "" {
		if _, ok := parseDocumentDirection(doc); !ok {
			result.AddError("direction", fmt.Sprintf("unknown direction %q", doc.Direction))
		}
	}

	checkFinite := func(field string, val float64) {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			result.AddError(field, fmt.Sprintf("must be finite, got %v", val))
		}
	}
	checkFinite("x", doc.X)
	checkFinite("y", doc.Y)
	checkFinite("width", doc.Width)
	checkFinite("height", doc.Height)

	if doc.Width < 0 {
		result.AddError("width", fmt.Sprintf("must be non-negative, got %v", doc.Width))
	}
	if doc.Height < 0 {
		result.AddError("height", fmt.Sprintf("must be non-negative, got %v", doc.Height))
	}
	if doc.Width == 0 || doc.Height == 0 {
		result.AddWarning("bounds", "zero-sized bounds paint nothing")
	}
	if doc.Width > maxDimension {
		result.AddWarning("width", fmt.Sprintf("unusually large value %v", doc.Width))
	}
	if doc.Height > maxDimension {
		result.AddWarning("height", fmt.Sprintf("unusually large value %v", doc.Height))
	}

	if math.IsNaN(doc.CornerRadius) || doc.CornerRadius < 0 {
		result.AddError("corner_radius", fmt.Sprintf("must be non-negative, got %v", doc.CornerRadius))
	}
}

func (v *Validator) validateStyle(doc *Document, result *ValidationResult) {
	if _, err := render.ParseInterpolation(doc.Interpolation); err != nil {
		result.AddError("interpolation", err.Error())
	}
	if _, err := render.ParseExtend(doc.Extend); err != nil {
		result.AddError("extend", err.Error())
	}
	if doc.Background != "" {
		if _, err := render.ParseColor(doc.Background); err != nil {
			result.AddError("background", err.Error())
		}
	}
}

func (v *Validator) validateStops(doc *Document, result *ValidationResult) {
	if doc.MaskLength != nil {
		if math.IsNaN(*doc.MaskLength) {
			result.AddError("mask_length", "must be a number")
		}
		if len(doc.Stops) > 0 {
			result.AddWarning("stops", "ignored because mask_length is set")
		}
		return
	}

	prev := math.Inf(-1)
	for i, s := range doc.Stops {
		field := fmt.Sprintf("stops[%d]", i)
		if math.IsNaN(s.Offset) || s.Offset < 0 || s.Offset > 1 {
			result.AddError(field, fmt.Sprintf("offset %v outside [0, 1]", s.Offset))
		} else if s.Offset < prev {
			result.AddError(field, fmt.Sprintf("offset %v is less than the previous offset %v", s.Offset, prev))
		}
		if !math.IsNaN(s.Offset) {
			prev = math.Max(prev, s.Offset)
		}
		if _, err := render.ParseColor(s.Color); err != nil {
			result.AddError(field, err.Error())
		}
	}
	if len(doc.Stops) == 1 {
		result.AddWarning("stops", "a single stop paints a solid fill")
	}
}

// ValidateDocument is a convenience function to validate a Document with default settings.
// Returns nil if the document is valid, or an error describing validation failures.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	return NewValidator().Validate(doc).Error()
}

// ValidateDocumentStrict validates a Document with strict mode enabled.
// Warnings are treated as errors.
func ValidateDocumentStrict(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	return NewValidator().WithStrictMode(true).Validate(doc).Error()
}
