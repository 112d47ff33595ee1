package risk

import (
	"context"
	"errors"

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

type scoreRepoPG struct{ pool *pgxpool.Pool }

func NewScoreRepoPG(pool *pgxpool.Pool) ScoreRepository {
	return &scoreRepoPG{pool: pool}
}

func (r *scoreRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const scoreCols = `score_id, patient_id, risk_score, calculated_at`

func scanScore(row pgx.Row) (*ScoreRecord, error) {
	var s ScoreRecord
	err := row.Scan(&s.ScoreID, &s.PatientID, &s.Score, &s.CalculatedAt)
	return &s, err
}

func (r *scoreRepoPG) Append(ctx context.Context, patientID, score int) (*ScoreRecord, error) {
	rec := &ScoreRecord{PatientID: patientID, Score: score}
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_risk_scores (patient_id, risk_score)
		VALUES ($1, $2)
		RETURNING score_id, calculated_at`,
		patientID, score).Scan(&rec.ScoreID, &rec.CalculatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *scoreRepoPG) Latest(ctx context.Context, patientID int) (*ScoreRecord, error) {
	rec, err := scanScore(r.conn(ctx).QueryRow(ctx, `
		SELECT `+scoreCols+` FROM patient_risk_scores
		WHERE patient_id = $1
		ORDER BY calculated_at DESC
		LIMIT 1`, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *scoreRepoPG) Recent(ctx context.Context, patientID, limit int) ([]*ScoreRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+scoreCols+` FROM patient_risk_scores
		WHERE patient_id = $1
		ORDER BY calculated_at DESC
		LIMIT $2`, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*ScoreRecord
	for rows.Next() {
		rec, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, rows.Err()
}
