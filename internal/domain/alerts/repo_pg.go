package alerts

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

const alertCols = `alert_id, patient_id, message, severity, created_at, is_read`

func scanAlert(row pgx.Row) (*Alert, error) {
	var a Alert
	err := row.Scan(&a.AlertID, &a.PatientID, &a.Message, &a.Severity, &a.CreatedAt, &a.IsRead)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Alert) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_alerts (patient_id, message, severity)
		VALUES ($1,$2,$3)
		RETURNING alert_id, created_at, is_read`,
		a.PatientID, a.Message, a.Severity).Scan(&a.AlertID, &a.CreatedAt, &a.IsRead)
}

func (r *repoPG) MarkRead(ctx context.Context, alertID, patientID int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient_alerts SET is_read = TRUE
		WHERE alert_id = $1 AND patient_id = $2`, alertID, patientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int, unreadOnly bool, limit, offset int) ([]*Alert, int, error) {
	filter := `WHERE patient_id = $1`
	if unreadOnly {
		filter += ` AND is_read = FALSE`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patient_alerts `+filter, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+alertCols+` FROM patient_alerts
		`+filter+`
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

// doctorPatientFilter restricts rows to patients who have at least one
// appointment with the doctor. The roster is appointment-derived; there is no
// separate assignment table.
const doctorPatientFilter = `a.patient_id IN (
		SELECT DISTINCT patient_id FROM patient_appointments WHERE doctor_id = $1)`

func (r *repoPG) ListForDoctor(ctx context.Context, doctorID int, unreadOnly bool, limit int) ([]*DoctorAlert, error) {
	q := `
		SELECT a.alert_id, a.patient_id, a.message, a.severity, a.created_at, a.is_read,
			u.first_name || ' ' || u.last_name AS patient_name
		FROM patient_alerts a
		JOIN patient_details pd ON pd.patient_id = a.patient_id
		JOIN users u ON u.user_id = pd.user_id
		WHERE ` + doctorPatientFilter
	if unreadOnly {
		q += ` AND a.is_read = FALSE`
	}
	q += `
		ORDER BY a.created_at DESC
		LIMIT $2`

	rows, err := r.conn(ctx).Query(ctx, q, doctorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*DoctorAlert
	for rows.Next() {
		var da DoctorAlert
		if err := rows.Scan(&da.AlertID, &da.PatientID, &da.Message, &da.Severity,
			&da.CreatedAt, &da.IsRead, &da.PatientName); err != nil {
			return nil, err
		}
		items = append(items, &da)
	}
	return items, rows.Err()
}

func (r *repoPG) MarkReadForDoctor(ctx context.Context, alertID, doctorID int) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient_alerts a SET is_read = TRUE
		WHERE a.alert_id = $2 AND `+doctorPatientFilter, doctorID, alertID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
