package portal

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

func (r *repoPG) Roster(ctx context.Context, doctorID int) ([]*RosterEntry, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT pd.patient_id,
			u.first_name || ' ' || u.last_name AS patient_name,
			u.email,
			COALESCE((
				SELECT rs.risk_score FROM patient_risk_scores rs
				WHERE rs.patient_id = pd.patient_id
				ORDER BY rs.calculated_at DESC LIMIT 1), 0) AS latest_risk_score,
			(SELECT COUNT(*) FROM patient_alerts pa
				WHERE pa.patient_id = pd.patient_id AND pa.is_read = FALSE) AS unread_alerts,
			(SELECT COUNT(*) FROM patient_medications pm
				WHERE pm.patient_id = pd.patient_id AND pm.status = 'Pending') AS pending_medications,
			(SELECT MAX(hd.recorded_at) FROM patient_health_data hd
				WHERE hd.patient_id = pd.patient_id) AS last_reading_at
		FROM patient_details pd
		JOIN users u ON u.user_id = pd.user_id
		WHERE pd.patient_id IN (
			SELECT DISTINCT patient_id FROM patient_appointments WHERE doctor_id = $1)
		ORDER BY latest_risk_score DESC, patient_name ASC`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*RosterEntry
	for rows.Next() {
		var e RosterEntry
		if err := rows.Scan(&e.PatientID, &e.PatientName, &e.Email, &e.LatestRiskScore,
			&e.UnreadAlerts, &e.PendingMedications, &e.LastReadingAt); err != nil {
			return nil, err
		}
		items = append(items, &e)
	}
	return items, rows.Err()
}

func (r *repoPG) IsDoctorPatient(ctx context.Context, patientID, doctorID int) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM patient_appointments
			WHERE patient_id = $1 AND doctor_id = $2)`, patientID, doctorID).Scan(&ok)
	return ok, err
}
