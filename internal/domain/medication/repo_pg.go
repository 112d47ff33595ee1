package medication

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

const medicationCols = `medication_id, patient_id, name, dosage, frequency, next_dose,
	instructions, prescribed_by, status, created_at`

func (r *repoPG) Create(ctx context.Context, m *Medication) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_medications (patient_id, name, dosage, frequency,
			next_dose, instructions, prescribed_by, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING medication_id, created_at`,
		m.PatientID, m.Name, m.Dosage, m.Frequency, m.NextDose,
		m.Instructions, m.PrescribedBy, m.Status).Scan(&m.MedicationID, &m.CreatedAt)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int) ([]*Medication, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+medicationCols+` FROM patient_medications
		WHERE patient_id = $1
		ORDER BY next_dose ASC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Medication
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.MedicationID, &m.PatientID, &m.Name, &m.Dosage,
			&m.Frequency, &m.NextDose, &m.Instructions, &m.PrescribedBy,
			&m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}

func (r *repoPG) MarkTaken(ctx context.Context, medicationID, patientID int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient_medications SET status = $3
		WHERE medication_id = $1 AND patient_id = $2`,
		medicationID, patientID, StatusTaken)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
