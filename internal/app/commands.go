package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siftdb/sift/internal/config"
	"github.com/siftdb/sift/internal/logger"
	"github.com/siftdb/sift/internal/query"
	"github.com/siftdb/sift/internal/storage/sqlite"
	"github.com/siftdb/sift/internal/ui/views/results"
)

// connectToDatabase creates a command to connect to the database
func connectToDatabase(cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		poolCfg, err := pgxpool.ParseConfig(cfg.Connection.DSN())
		if err != nil {
			return ConnectionFailedMsg{Err: err}
		}
		if cfg.Connection.ReadOnly {
			poolCfg.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return ConnectionFailedMsg{Err: err}
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return ConnectionFailedMsg{Err: err}
		}

		var version string
		if err := pool.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
			version = "Unknown"
		}

		return DatabaseConnectedMsg{Pool: pool, Version: version}
	}
}

// loadState creates a command to load the persisted view state for a buffer
func loadState(store *sqlite.StateStore, uri string) tea.Cmd {
	return func() tea.Msg {
		state, err := store.Load(uri)
		if err != nil {
			logger.Warn("loading view state", "uri", uri, "error", err)
			state = &results.ViewState{}
		}
		return StateLoadedMsg{URI: uri, State: state}
	}
}

// saveState creates a command to persist the view state for a buffer
func saveState(store *sqlite.StateStore, uri string, state *results.ViewState) tea.Cmd {
	return func() tea.Msg {
		if err := store.Save(uri, state); err != nil {
			logger.Warn("saving view state", "uri", uri, "error", err)
		}
		return nil
	}
}

// queryStarted announces the start of an execution on the runner.
func queryStarted(r *query.Runner, sql string) tea.Cmd {
	return func() tea.Msg {
		return results.QueryStartedMsg{
			RunnerID:  r.ID(),
			SQL:       sql,
			StartTime: time.Now(),
		}
	}
}

// executeQuery runs sql on the runner and records it in history.
func executeQuery(r *query.Runner, sql string, timeout time.Duration, history *sqlite.HistoryStore) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		result, err := r.Execute(context.Background(), sql, timeout)

		if history != nil {
			var rowCount int64
			var errText string
			if result != nil {
				rowCount = int64(result.RowCount())
			}
			if err != nil {
				errText = err.Error()
			}
			if herr := history.Add(sql, time.Since(start).Milliseconds(), rowCount, errText); herr != nil {
				logger.Warn("recording query history", "error", herr)
			}
		}

		msg := results.QueryFinishedMsg{RunnerID: r.ID(), Result: result, Err: err}
		if result != nil {
			msg.BatchID = r.BatchCount() - 1
		}
		return msg
	}
}

// tickStatus creates a command to refresh the status line clock
func tickStatus() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return StatusTickMsg{Timestamp: t}
	})
}
