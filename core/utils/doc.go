// Package utils provides small helpers shared across packages, mainly the
// conversion of raw database values into their text form.
package utils
