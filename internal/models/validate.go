package models

import (
	"strings"

	"storefront/internal/errs"
)

// Validate lists every missing or malformed field of a create request.
func (r ProductRequest) Validate() error {
	var fields []string
	if strings.TrimSpace(r.Name) == "" {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(r.Description) == "" {
		fields = append(fields, "description")
	}
	if !(r.Price > 0) {
		fields = append(fields, "price")
	}
	if strings.TrimSpace(r.Image) == "" {
		fields = append(fields, "image")
	}
	if strings.TrimSpace(r.Category) == "" {
		fields = append(fields, "category")
	}
	if r.Rating < 0 || r.Rating > 5 {
		fields = append(fields, "rating")
	}
	if r.Count < 0 {
		fields = append(fields, "count")
	}
	if len(fields) > 0 {
		return errs.Invalid(fields...)
	}
	return nil
}

// Validate checks the fields present in a partial update.
func (u ProductUpdate) Validate() error {
	if u.Empty() {
		return errs.Invalidf("no valid fields to update")
	}

	var fields []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		fields = append(fields, "name")
	}
	if u.Price != nil && !(*u.Price > 0) {
		fields = append(fields, "price")
	}
	if u.Image != nil && strings.TrimSpace(*u.Image) == "" {
		fields = append(fields, "image")
	}
	if u.Category != nil && strings.TrimSpace(*u.Category) == "" {
		fields = append(fields, "category")
	}
	if u.Rating != nil && (*u.Rating < 0 || *u.Rating > 5) {
		fields = append(fields, "rating")
	}
	if u.Count != nil && *u.Count < 0 {
		fields = append(fields, "count")
	}
	if len(fields) > 0 {
		return errs.Invalid(fields...)
	}
	return nil
}
