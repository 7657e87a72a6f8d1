// Package model defines the declarative form definitions loaded from JSON,
// YAML, or OpenAPI documents. Field validations use canonical kinds
// (minLength/maxLength, pattern, email) with string parameters so definitions
// snapshot deterministically, while form-level rules (currently only "match")
// describe cross-field constraints by field name. The builder package turns a
// FormModel into a live form.Form.
package model
