package rewards

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carebridge/carebridge/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Insert(ctx context.Context, e *Entry) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_points (patient_id, points, reason)
		VALUES ($1,$2,$3)
		RETURNING point_id, awarded_at`,
		e.PatientID, e.Points, e.Reason).Scan(&e.PointID, &e.AwardedAt)
}

func (r *repoPG) Total(ctx context.Context, patientID int) (int, error) {
	var total int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(points), 0) FROM patient_points WHERE patient_id = $1`,
		patientID).Scan(&total)
	return total, err
}

func (r *repoPG) History(ctx context.Context, patientID, limit int) ([]*Entry, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT point_id, patient_id, points, reason, awarded_at
		FROM patient_points
		WHERE patient_id = $1
		ORDER BY awarded_at DESC
		LIMIT $2`, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PointID, &e.PatientID, &e.Points, &e.Reason, &e.AwardedAt); err != nil {
			return nil, err
		}
		items = append(items, &e)
	}
	return items, rows.Err()
}
