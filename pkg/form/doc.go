// Package form holds headless form state: ordered fields with string values,
// per-field error bags, per-field validators, and form-level rules. Rules never
// mutate state directly; they return a Diff that the Form applies in
// registration order, so ownership of each named error stays unambiguous.
package form
