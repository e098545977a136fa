package query

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var runnerSeq atomic.Int64

// explainRe matches a leading EXPLAIN clause, with or without options.
var explainRe = regexp.MustCompile(`(?is)^\s*explain(\s*\([^)]*\))?\s+`)

// Runner represents one query execution bound to a resource URI.
// A runner accumulates the batches produced by successive executions
// against the same editor buffer; rebinding an input to a new buffer
// produces a new runner with a new identity.
type Runner struct {
	id   int64
	uri  string
	pool *pgxpool.Pool

	mu       sync.Mutex
	sql      string
	batches  [][]*ResultSet
	messages []Message
	running  bool
}

// NewRunner creates a runner for the given resource URI.
func NewRunner(uri string, pool *pgxpool.Pool) *Runner {
	return &Runner{
		id:   runnerSeq.Add(1),
		uri:  uri,
		pool: pool,
	}
}

// ID returns the runner's unique identity.
func (r *Runner) ID() int64 { return r.id }

// URI returns the resource URI this runner is bound to.
func (r *Runner) URI() string { return r.uri }

// SQL returns the most recently executed query text.
func (r *Runner) SQL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sql
}

// IsPlanQuery reports whether the last executed query was an EXPLAIN.
func (r *Runner) IsPlanQuery() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return explainRe.MatchString(r.sql)
}

// Running reports whether an execution is in flight.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Execute runs sql and appends a new batch with its result set.
// The returned result is also retrievable via Result(0, batch).
func (r *Runner) Execute(ctx context.Context, sql string, timeout time.Duration) (*ResultSet, error) {
	r.mu.Lock()
	r.sql = sql
	r.running = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	rows, err := r.pool.Query(queryCtx, sql)
	if err != nil {
		r.addMessage(Message{Time: time.Now(), Text: err.Error(), IsError: true})
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]Column, len(fields))
	for i, fd := range fields {
		columns[i] = Column{
			Name:     fd.Name,
			TypeOID:  fd.DataTypeOID,
			TypeName: typeName(fd.DataTypeOID),
		}
	}

	var raw [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			r.addMessage(Message{Time: time.Now(), Text: err.Error(), IsError: true})
			return nil, fmt.Errorf("reading row: %w", err)
		}
		raw = append(raw, vals)
	}
	if err := rows.Err(); err != nil {
		r.addMessage(Message{Time: time.Now(), Text: err.Error(), IsError: true})
		return nil, fmt.Errorf("query failed: %w", err)
	}

	result := &ResultSet{
		Columns:  columns,
		Rows:     FormatRows(raw),
		RawRows:  raw,
		Duration: time.Since(start),
	}
	result.CalculateColWidths(32)

	r.mu.Lock()
	r.batches = append(r.batches, []*ResultSet{result})
	batch := len(r.batches) - 1
	r.mu.Unlock()

	tag := rows.CommandTag()
	r.addMessage(Message{
		Time: time.Now(),
		Text: summarize(tag, len(raw), result.Duration, batch),
	})
	return result, nil
}

// Result returns the result set at the given coordinate, or nil.
func (r *Runner) Result(resultID, batchID int) *ResultSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	if batchID < 0 || batchID >= len(r.batches) {
		return nil
	}
	sets := r.batches[batchID]
	if resultID < 0 || resultID >= len(sets) {
		return nil
	}
	return sets[resultID]
}

// BatchCount returns the number of executed batches.
func (r *Runner) BatchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

// Messages returns a copy of the accumulated execution messages.
func (r *Runner) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// PlanXML fetches the execution plan for the runner's query as XML.
// If the query is itself an EXPLAIN, the inner statement is planned.
func (r *Runner) PlanXML(ctx context.Context) (string, error) {
	r.mu.Lock()
	sql := r.sql
	r.mu.Unlock()
	if strings.TrimSpace(sql) == "" {
		return "", fmt.Errorf("no query to plan")
	}

	target := explainRe.ReplaceAllString(sql, "")
	rows, err := r.pool.Query(ctx, "EXPLAIN (FORMAT XML) "+target)
	if err != nil {
		return "", fmt.Errorf("plan fetch failed: %w", err)
	}
	defer rows.Close()

	var sb strings.Builder
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return "", fmt.Errorf("reading plan: %w", err)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("plan fetch failed: %w", err)
	}
	return sb.String(), nil
}

func (r *Runner) addMessage(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
}

func summarize(tag pgconn.CommandTag, rowCount int, d time.Duration, batch int) string {
	if tag.Select() || rowCount > 0 {
		return fmt.Sprintf("batch %d: %d rows (%dms)", batch, rowCount, d.Milliseconds())
	}
	if n := tag.RowsAffected(); n > 0 {
		return fmt.Sprintf("batch %d: %d rows affected (%dms)", batch, n, d.Milliseconds())
	}
	return fmt.Sprintf("batch %d: %s (%dms)", batch, tag.String(), d.Milliseconds())
}

// typeName maps common PostgreSQL type OIDs to readable names.
func typeName(oid uint32) string {
	switch oid {
	case 16:
		return "boolean"
	case 20:
		return "bigint"
	case 21:
		return "smallint"
	case 23:
		return "integer"
	case 25:
		return "text"
	case 700:
		return "real"
	case 701:
		return "double precision"
	case 1043:
		return "varchar"
	case 1082:
		return "date"
	case 1114:
		return "timestamp"
	case 1184:
		return "timestamptz"
	case 1700:
		return "numeric"
	case 2950:
		return "uuid"
	case 114, 3802:
		return "json"
	default:
		return fmt.Sprintf("oid %d", oid)
	}
}
