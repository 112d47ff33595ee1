package vitals

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

const readingCols = `record_id, patient_id, blood_pressure, heart_rate, blood_sugar,
	oxygen_level, notes, recorded_at`

func scanReading(row pgx.Row) (*Reading, error) {
	var rd Reading
	err := row.Scan(&rd.RecordID, &rd.PatientID, &rd.BloodPressure, &rd.HeartRate,
		&rd.BloodSugar, &rd.OxygenLevel, &rd.Notes, &rd.RecordedAt)
	return &rd, err
}

func (r *repoPG) Create(ctx context.Context, rd *Reading) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_health_data (patient_id, blood_pressure, heart_rate,
			blood_sugar, oxygen_level, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING record_id, recorded_at`,
		rd.PatientID, rd.BloodPressure, rd.HeartRate, rd.BloodSugar,
		rd.OxygenLevel, rd.Notes).Scan(&rd.RecordID, &rd.RecordedAt)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID, limit, offset int) ([]*Reading, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patient_health_data WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+readingCols+` FROM patient_health_data
		WHERE patient_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Reading
	for rows.Next() {
		rd, err := scanReading(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rd)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Recent(ctx context.Context, patientID, limit int) ([]*Reading, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+readingCols+` FROM patient_health_data
		WHERE patient_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2`, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Reading
	for rows.Next() {
		rd, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rd)
	}
	return items, rows.Err()
}

func (r *repoPG) Latest(ctx context.Context, patientID int) (*Reading, error) {
	rd, err := scanReading(r.conn(ctx).QueryRow(ctx, `
		SELECT `+readingCols+` FROM patient_health_data
		WHERE patient_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1`, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rd, nil
}
