// Package history records evaluation runs in a sqlite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	devenv "roeval/dev/env"
	"roeval/internal/chrono"
	"roeval/internal/history/db"
	"roeval/lib/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("roeval/internal/history")

const (
	report_history_record = "history.record"
	report_history_prune  = "history.prune"
)

// Run is a single evaluation, successful or not.
type Run struct {
	ID            int64
	StartedAt     time.Time
	Service       string
	RO            string
	Minim         string
	Purpose       string
	Template      string
	EvaluationURI string
	TurtleBytes   int
	RDFXMLBytes   int
	// Error is empty for successful runs.
	Error string
}

func (r Run) Succeeded() bool {
	return r.Error == ""
}

type Options struct {
	// Path is the database file, it may start with <dev_state>. ":memory:" opens a
	// database that is discarded on Close.
	Path string
	// Retention is how long runs are kept, runs older than this are removed
	// when a new run is recorded. zero keeps everything.
	Retention time.Duration
	Time      chrono.TimeAPI
	Telemetry telemetry.API
}

type Store struct {
	db        *sql.DB
	qry       *db.Queries
	makeTx    db.MakeTx
	retention time.Duration
	time      chrono.TimeAPI
	tel       telemetry.API
}

// Open opens (creating if needed) the database at opts.Path and applies the schema.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Time == nil {
		opts.Time = chrono.NewStandardTime()
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.SlogAPI{}
	}

	path := opts.Path
	if path == "" {
		return nil, fmt.Errorf("history database path is empty")
	}
	if path != ":memory:" {
		var err error
		path, err = devenv.ResolvePath(path)
		if err != nil {
			return nil, err
		}
		err = os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, err
		}
	}

	sqlite, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// every connection to :memory: is a separate database
	sqlite.SetMaxOpenConns(1)

	_, err = sqlite.ExecContext(ctx, db.Schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		sqlite.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &Store{
		db:        sqlite,
		qry:       db.New(sqlite),
		makeTx:    db.NewMakeTx(sqlite),
		retention: opts.Retention,
		time:      opts.Time,
		tel:       telemetry.NewScopedAPI("history", opts.Telemetry),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores run and returns its id. StartedAt defaults to the current time.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	ctx, span := tracer.Start(ctx, "Record")
	defer span.End()

	now := s.time.Now()
	if run.StartedAt.IsZero() {
		run.StartedAt = now
	}

	tx, discard, commit, err := s.makeTx()
	if err != nil {
		return 0, err
	}
	defer discard()

	id, err := tx.InsertRun(ctx, db.InsertRunParams{
		StartedAt:     run.StartedAt.UnixMilli(),
		Service:       run.Service,
		Ro:            run.RO,
		Minim:         run.Minim,
		Purpose:       run.Purpose,
		Template:      run.Template,
		EvaluationUri: run.EvaluationURI,
		TurtleBytes:   int64(run.TurtleBytes),
		RdfxmlBytes:   int64(run.RDFXMLBytes),
		Error:         run.Error,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert run")
		s.tel.ReportBroken(report_history_record, err)
		return 0, fmt.Errorf("record run: %w", err)
	}

	if s.retention > 0 {
		removed, err := tx.DeleteRunsBefore(ctx, now.Add(-s.retention).UnixMilli())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to prune runs")
			s.tel.ReportBroken(report_history_prune, err)
			return 0, fmt.Errorf("prune runs: %w", err)
		}
		if removed > 0 {
			s.tel.ReportCount(report_history_prune, removed)
		}
	}

	err = commit()
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	span.SetAttributes(attribute.Int64("id", id))
	return id, nil
}

// List returns up to limit runs, newest first. a limit <= 0 returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	queryLimit := int64(limit)
	if limit <= 0 {
		queryLimit = -1
	}
	rows, err := s.qry.ListRuns(ctx, queryLimit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list runs")
		return nil, fmt.Errorf("list runs: %w", err)
	}

	runs := make([]Run, len(rows))
	for i, row := range rows {
		runs[i] = Run{
			ID:            row.ID,
			StartedAt:     time.UnixMilli(row.StartedAt).UTC(),
			Service:       row.Service,
			RO:            row.Ro,
			Minim:         row.Minim,
			Purpose:       row.Purpose,
			Template:      row.Template,
			EvaluationURI: row.EvaluationUri,
			TurtleBytes:   int(row.TurtleBytes),
			RDFXMLBytes:   int(row.RdfxmlBytes),
			Error:         row.Error,
		}
	}
	return runs, nil
}
