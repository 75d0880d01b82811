// Package models describes the lookup table as a GORM model.
//
// The model is never migrated; the integrity checks reflect on its tags to
// verify that a database carries the expected columns.
package models
