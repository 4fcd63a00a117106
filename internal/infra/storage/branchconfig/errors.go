package branchconfig

import "errors"

var (
	// ErrConfigNotFound is returned when a branch has no stored configuration.
	ErrConfigNotFound = errors.New("branchconfig.repository: config not found")

	// ErrBuildQuery is returned when building the SQL statement fails.
	ErrBuildQuery = errors.New("branchconfig.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL statement fails.
	ErrExecQuery = errors.New("branchconfig.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("branchconfig.repository: failed to scan row")
)
