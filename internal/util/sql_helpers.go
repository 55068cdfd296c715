package util

import (
	"database/sql"
)

// StringToNullString converts a string to sql.NullString.
// An empty string is treated as NULL.
func StringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{} // Valid is false, String is ""
	}
	return sql.NullString{String: s, Valid: true}
}

// NullStringToString returns the empty string for NULL
func NullStringToString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}
