package scheduling

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

const appointmentCols = `appointment_id, patient_id, doctor_id, scheduled_at, type, status, notes`

func (r *repoPG) CreateAppointment(ctx context.Context, a *Appointment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_appointments (patient_id, doctor_id, scheduled_at, type, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING appointment_id`,
		a.PatientID, a.DoctorID, a.ScheduledAt, a.Type, a.Status, a.Notes).
		Scan(&a.AppointmentID)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+appointmentCols+` FROM patient_appointments
		WHERE patient_id = $1
		ORDER BY scheduled_at ASC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.AppointmentID, &a.PatientID, &a.DoctorID,
			&a.ScheduledAt, &a.Type, &a.Status, &a.Notes); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID int) ([]*DoctorAppointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.appointment_id, a.patient_id, a.doctor_id, a.scheduled_at,
			a.type, a.status, a.notes,
			u.first_name || ' ' || u.last_name AS patient_name
		FROM patient_appointments a
		JOIN patient_details pd ON pd.patient_id = a.patient_id
		JOIN users u ON u.user_id = pd.user_id
		WHERE a.doctor_id = $1
		ORDER BY a.scheduled_at ASC`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*DoctorAppointment
	for rows.Next() {
		var da DoctorAppointment
		if err := rows.Scan(&da.AppointmentID, &da.PatientID, &da.DoctorID,
			&da.ScheduledAt, &da.Type, &da.Status, &da.Notes, &da.PatientName); err != nil {
			return nil, err
		}
		items = append(items, &da)
	}
	return items, rows.Err()
}

func (r *repoPG) UpdateStatus(ctx context.Context, appointmentID, doctorID int, status string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient_appointments SET status = $3
		WHERE appointment_id = $1 AND doctor_id = $2`,
		appointmentID, doctorID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) CompleteScheduled(ctx context.Context, patientID, doctorID int) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient_appointments SET status = $3
		WHERE patient_id = $1 AND doctor_id = $2 AND status = $4`,
		patientID, doctorID, StatusCompleted, StatusScheduled)
	return err
}

func (r *repoPG) CreateRequest(ctx context.Context, req *TelemedicineRequest) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO telemedicine_requests (patient_id, doctor_id, preferred_at, reason, symptoms, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING request_id, requested_at`,
		req.PatientID, req.DoctorID, req.PreferredAt, req.Reason, req.Symptoms, req.Status).
		Scan(&req.RequestID, &req.RequestedAt)
}

func (r *repoPG) ListRequestsByDoctor(ctx context.Context, doctorID int) ([]*TelemedicineRequest, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT request_id, patient_id, doctor_id, requested_at, preferred_at, reason, symptoms, status
		FROM telemedicine_requests
		WHERE doctor_id = $1
		ORDER BY requested_at DESC`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*TelemedicineRequest
	for rows.Next() {
		var req TelemedicineRequest
		if err := rows.Scan(&req.RequestID, &req.PatientID, &req.DoctorID,
			&req.RequestedAt, &req.PreferredAt, &req.Reason, &req.Symptoms, &req.Status); err != nil {
			return nil, err
		}
		items = append(items, &req)
	}
	return items, rows.Err()
}

func (r *repoPG) UpdateRequestStatus(ctx context.Context, requestID, doctorID int, status string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE telemedicine_requests SET status = $3
		WHERE request_id = $1 AND doctor_id = $2`,
		requestID, doctorID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
