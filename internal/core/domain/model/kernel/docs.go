// Package kernel contains shared value objects used across all domain models.
// These are small, immutable types with validated constructors; the zero value
// of every kernel type is invalid and rejected by Validate.
package kernel
