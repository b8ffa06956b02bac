package db

import (
	"context"
)

const insertRun = `-- name: InsertRun :one
insert into run (
    started_at, service, ro, minim, purpose,
    template, evaluation_uri, turtle_bytes, rdfxml_bytes, error
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
returning id
`

type InsertRunParams struct {
	StartedAt     int64
	Service       string
	Ro            string
	Minim         string
	Purpose       string
	Template      string
	EvaluationUri string
	TurtleBytes   int64
	RdfxmlBytes   int64
	Error         string
}

func (q *Queries) InsertRun(ctx context.Context, arg InsertRunParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, insertRun,
		arg.StartedAt,
		arg.Service,
		arg.Ro,
		arg.Minim,
		arg.Purpose,
		arg.Template,
		arg.EvaluationUri,
		arg.TurtleBytes,
		arg.RdfxmlBytes,
		arg.Error,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listRuns = `-- name: ListRuns :many
select id, started_at, service, ro, minim, purpose, template, evaluation_uri, turtle_bytes, rdfxml_bytes, error from run
order by started_at desc, id desc
limit ?
`

func (q *Queries) ListRuns(ctx context.Context, limit int64) ([]Run, error) {
	rows, err := q.db.QueryContext(ctx, listRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Run
	for rows.Next() {
		var i Run
		if err := rows.Scan(
			&i.ID,
			&i.StartedAt,
			&i.Service,
			&i.Ro,
			&i.Minim,
			&i.Purpose,
			&i.Template,
			&i.EvaluationUri,
			&i.TurtleBytes,
			&i.RdfxmlBytes,
			&i.Error,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteRunsBefore = `-- name: DeleteRunsBefore :execrows
delete from run where started_at < ?
`

func (q *Queries) DeleteRunsBefore(ctx context.Context, startedAt int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteRunsBefore, startedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
