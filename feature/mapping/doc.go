// Package mapping stores operator corrections for titles the matcher got
// wrong or could not match. A mapping keys on (platform, original title) and
// always wins over automatic matching.
package mapping
