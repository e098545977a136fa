package results

import (
	"time"

	"github.com/siftdb/sift/internal/query"
)

// QueryStartedMsg indicates a query execution began on a runner.
type QueryStartedMsg struct {
	RunnerID  int64
	SQL       string
	StartTime time.Time
}

// QueryFinishedMsg indicates a query execution completed on a runner.
type QueryFinishedMsg struct {
	RunnerID int64
	Result   *query.ResultSet
	BatchID  int
	Err      error
}

// PlanFetchedMsg carries the plan XML fetched after a plan query
// finished. Generation ties it to the input binding that requested it;
// stale fetches are dropped.
type PlanFetchedMsg struct {
	Generation int
	XML        string
	Err        error
}
