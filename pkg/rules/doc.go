// Package rules provides the validators forms attach to their fields and the
// cross-field Match rule used for password confirmation.
package rules
