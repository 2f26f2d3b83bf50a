// Package errors provides the structured AppError used for configuration
// and validation failures.
package errors
