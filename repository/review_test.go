package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"journal-review-api/models"
)

// Scripted database/sql driver. Each expected statement is declared up front
// with its argument list and canned result, so the generated SQL can be
// asserted without a live MySQL server.

type stepKind int

const (
	kindQuery stepKind = iota
	kindExec
)

type queryStep struct {
	kind    stepKind
	pattern *regexp.Regexp
	args    []driver.Value
	columns []string
	rows    [][]driver.Value
	err     error
	result  driver.Result
}

type scriptedDB struct {
	mu    sync.Mutex
	steps []*queryStep
}

func (db *scriptedDB) next(kind stepKind, query string, args []driver.NamedValue) (*queryStep, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.steps) == 0 {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	step := db.steps[0]
	if step.kind != kind {
		return nil, fmt.Errorf("unexpected kind for query %s: got %v want %v", query, kind, step.kind)
	}
	if !step.pattern.MatchString(query) {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	if len(step.args) != len(args) {
		return nil, fmt.Errorf("unexpected arg count for %s: got %d want %d", query, len(args), len(step.args))
	}
	for i := range args {
		if args[i].Value != step.args[i] {
			return nil, fmt.Errorf("unexpected arg %d for %s: got %v want %v", i, query, args[i].Value, step.args[i])
		}
	}
	db.steps = db.steps[1:]
	return step, nil
}

func (db *scriptedDB) verifyComplete() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.steps) != 0 {
		return fmt.Errorf("unmet expectations: %d", len(db.steps))
	}
	return nil
}

type scriptedDriver struct {
	db *scriptedDB
}

func (d *scriptedDriver) Open(string) (driver.Conn, error) {
	return &scriptedConn{db: d.db}, nil
}

type scriptedConn struct {
	db *scriptedDB
}

func (c *scriptedConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *scriptedConn) Close() error { return nil }

func (c *scriptedConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *scriptedConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	step, err := c.db.next(kindQuery, query, args)
	if err != nil {
		return nil, err
	}
	if step.err != nil {
		return nil, step.err
	}
	return &scriptedRows{columns: step.columns, rows: step.rows}, nil
}

func (c *scriptedConn) Query(query string, args []driver.Value) (driver.Rows, error) {
	named := make([]driver.NamedValue, len(args))
	for i, v := range args {
		named[i] = driver.NamedValue{Ordinal: i + 1, Value: v}
	}
	return c.QueryContext(context.Background(), query, named)
}

func (c *scriptedConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	step, err := c.db.next(kindExec, query, args)
	if err != nil {
		return nil, err
	}
	if step.err != nil {
		return nil, step.err
	}
	if step.result != nil {
		return step.result, nil
	}
	return scriptedResult{}, nil
}

func (c *scriptedConn) Exec(query string, args []driver.Value) (driver.Result, error) {
	named := make([]driver.NamedValue, len(args))
	for i, v := range args {
		named[i] = driver.NamedValue{Ordinal: i + 1, Value: v}
	}
	return c.ExecContext(context.Background(), query, named)
}

type scriptedResult struct {
	lastInsertID int64
	rowsAffected int64
}

func (r scriptedResult) LastInsertId() (int64, error) { return r.lastInsertID, nil }

func (r scriptedResult) RowsAffected() (int64, error) { return r.rowsAffected, nil }

type scriptedRows struct {
	columns []string
	rows    [][]driver.Value
	idx     int
}

func (r *scriptedRows) Columns() []string { return r.columns }

func (r *scriptedRows) Close() error { return nil }

func (r *scriptedRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	row := r.rows[r.idx]
	for i := range dest {
		dest[i] = nil
	}
	for i := range row {
		dest[i] = row[i]
	}
	r.idx++
	return nil
}

func newScriptedGormDB(t *testing.T, steps []*queryStep) (*gorm.DB, *scriptedDB, func()) {
	t.Helper()
	state := &scriptedDB{steps: steps}
	driverName := fmt.Sprintf("scripted_%d", time.Now().UnixNano())
	sql.Register(driverName, &scriptedDriver{db: state})

	sqlDB, err := sql.Open(driverName, "")
	if err != nil {
		t.Fatalf("failed to open sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to create gorm db: %v", err)
	}

	cleanup := func() {
		_ = sqlDB.Close()
	}
	return gormDB, state, cleanup
}

func TestPendingSubmissionsSetDifferenceQuery(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile(`SELECT \* FROM .submissions. WHERE \(status IN \(\?,\?\) AND delete_at IS NULL\) AND \(NOT EXISTS \(SELECT 1 FROM reviews WHERE reviews\.submission_id = submissions\.submission_id AND reviews\.reviewer_id = \?\)\) ORDER BY submitted_at ASC`),
			args:    []driver.Value{"submitted", "under_review", int64(7)},
			columns: []string{"submission_id", "title", "status", "author_id"},
			rows: [][]driver.Value{
				{int64(3), "Edge Caching Revisited", "submitted", int64(11)},
				{int64(5), "Sparse Graph Sketches", "under_review", int64(12)},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewReviewRepository(db)
	submissions, err := repo.PendingSubmissions(7)
	if err != nil {
		t.Fatalf("PendingSubmissions failed: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}

	if len(submissions) != 2 {
		t.Fatalf("got %d submissions, want 2", len(submissions))
	}
	if submissions[0].SubmissionID != 3 || submissions[0].Status != models.StatusSubmitted {
		t.Errorf("first row = %+v", submissions[0])
	}
	if submissions[1].Title != "Sparse Graph Sketches" {
		t.Errorf("second row = %+v", submissions[1])
	}
}

func TestRecommendationCountsHistogramQuery(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile(`SELECT recommendation, COUNT\(\*\) AS count FROM .reviews. WHERE submission_id = \? AND is_completed = \? AND recommendation IS NOT NULL GROUP BY .recommendation.`),
			args:    []driver.Value{int64(42), true},
			columns: []string{"recommendation", "count"},
			rows: [][]driver.Value{
				{"accept", int64(2)},
				{"minor_revisions", int64(1)},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewReviewRepository(db)
	counts, err := repo.RecommendationCounts(42)
	if err != nil {
		t.Fatalf("RecommendationCounts failed: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}

	if len(counts) != 2 {
		t.Fatalf("got %d histogram rows, want 2", len(counts))
	}
	if counts[0].Recommendation != "accept" || counts[0].Count != 2 {
		t.Errorf("first row = %+v", counts[0])
	}
}

func TestExistsCountsAssignmentPair(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile(`SELECT count\(\*\) FROM .reviews. WHERE submission_id = \? AND reviewer_id = \?`),
			args:    []driver.Value{int64(42), int64(7)},
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewReviewRepository(db)
	assigned, err := repo.Exists(42, 7)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
	if !assigned {
		t.Error("pair should be reported as already assigned")
	}
}
