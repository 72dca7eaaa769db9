// Package utils provides loose type conversions for decoding platform exports,
// where the same field arrives as a number, a numeric string or a timestamp string.
package utils
