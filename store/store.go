// Package store selects a timesheet.Store backend by name.
package store

import (
	"fmt"

	"github.com/warp/timesheet-engine/store/jsonfile"
	"github.com/warp/timesheet-engine/store/memory"
	"github.com/warp/timesheet-engine/store/sqlite"
	"github.com/warp/timesheet-engine/timesheet"
)

// Backends accepted by Open.
const (
	BackendJSONFile = "jsonfile"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Open returns the configured backend. The jsonfile backend is the default:
// it matches the flat key-value persistence model the system assumes.
func Open(backend, dataDir, dbPath string) (timesheet.Store, error) {
	switch backend {
	case BackendJSONFile, "":
		return jsonfile.New(dataDir)
	case BackendSQLite:
		return sqlite.New(dbPath)
	case BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %s, %s or %s)",
			backend, BackendJSONFile, BackendSQLite, BackendMemory)
	}
}
