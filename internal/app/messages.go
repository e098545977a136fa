package app

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siftdb/sift/internal/ui/views/results"
)

// DatabaseConnectedMsg is sent when the database connection is successfully established
type DatabaseConnectedMsg struct {
	Pool    *pgxpool.Pool
	Version string
}

// ConnectionFailedMsg is sent when the database connection fails
type ConnectionFailedMsg struct {
	Err error
}

// StatusTickMsg is sent periodically to refresh the status line clock
type StatusTickMsg struct {
	Timestamp time.Time
}

// StateLoadedMsg carries the persisted view state for the active buffer
type StateLoadedMsg struct {
	URI   string
	State *results.ViewState
}

// ErrorMsg is sent when a general error occurs
type ErrorMsg struct {
	Err error
}
