package database

import "errors"

var (
	// ErrDatabaseNotFound is returned by Open when the database file does
	// not exist and CreateIfNotExists is false.
	ErrDatabaseNotFound = errors.New("database not found")

	// ErrReportNotFound is returned when no report has the requested id.
	ErrReportNotFound = errors.New("report not found")
)
