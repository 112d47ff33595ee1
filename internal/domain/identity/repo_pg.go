package identity

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

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

func (r *repoPG) CreateUser(ctx context.Context, u *User) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, role)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING user_id, created_at`,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role).
		Scan(&u.UserID, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailTaken
	}
	return err
}

func (r *repoPG) UserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT user_id, email, password_hash, first_name, last_name, role, created_at, last_login
		FROM users WHERE email = $1`, email).
		Scan(&u.UserID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.Role, &u.CreatedAt, &u.LastLogin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repoPG) TouchLastLogin(ctx context.Context, userID int) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE users SET last_login = NOW() WHERE user_id = $1`, userID)
	return err
}

func (r *repoPG) CreatePatientProfile(ctx context.Context, p *PatientProfile) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_details (user_id, date_of_birth, gender, phone_number,
			address, emergency_contact, emergency_phone)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING patient_id`,
		p.UserID, p.DateOfBirth, p.Gender, p.PhoneNumber,
		p.Address, p.EmergencyContact, p.EmergencyPhone).Scan(&p.PatientID)
}

func (r *repoPG) CreateDoctorProfile(ctx context.Context, d *DoctorProfile) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctor_details (user_id, specialization, license_number,
			phone_number, hospital_affiliation)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING doctor_id`,
		d.UserID, d.Specialization, d.LicenseNumber,
		d.PhoneNumber, d.HospitalAffiliation).Scan(&d.DoctorID)
}

func (r *repoPG) PatientIDForUser(ctx context.Context, userID int) (int, error) {
	var id int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT patient_id FROM patient_details WHERE user_id = $1`, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

func (r *repoPG) DoctorIDForUser(ctx context.Context, userID int) (int, error) {
	var id int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT doctor_id FROM doctor_details WHERE user_id = $1`, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

func (r *repoPG) PatientProfile(ctx context.Context, patientID int) (*PatientProfile, error) {
	var p PatientProfile
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT pd.patient_id, u.user_id, u.email, u.first_name, u.last_name,
			pd.date_of_birth, pd.gender, pd.phone_number, pd.address,
			pd.emergency_contact, pd.emergency_phone
		FROM patient_details pd
		JOIN users u ON u.user_id = pd.user_id
		WHERE pd.patient_id = $1`, patientID).
		Scan(&p.PatientID, &p.UserID, &p.Email, &p.FirstName, &p.LastName,
			&p.DateOfBirth, &p.Gender, &p.PhoneNumber, &p.Address,
			&p.EmergencyContact, &p.EmergencyPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) DoctorProfile(ctx context.Context, doctorID int) (*DoctorProfile, error) {
	var d DoctorProfile
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT dd.doctor_id, u.user_id, u.email, u.first_name, u.last_name,
			dd.specialization, dd.license_number, dd.phone_number, dd.hospital_affiliation
		FROM doctor_details dd
		JOIN users u ON u.user_id = dd.user_id
		WHERE dd.doctor_id = $1`, doctorID).
		Scan(&d.DoctorID, &d.UserID, &d.Email, &d.FirstName, &d.LastName,
			&d.Specialization, &d.LicenseNumber, &d.PhoneNumber, &d.HospitalAffiliation)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) ListDoctors(ctx context.Context) ([]*DoctorProfile, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT dd.doctor_id, u.user_id, u.email, u.first_name, u.last_name,
			dd.specialization, dd.license_number, dd.phone_number, dd.hospital_affiliation
		FROM doctor_details dd
		JOIN users u ON u.user_id = dd.user_id
		ORDER BY u.last_name, u.first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*DoctorProfile
	for rows.Next() {
		var d DoctorProfile
		if err := rows.Scan(&d.DoctorID, &d.UserID, &d.Email, &d.FirstName, &d.LastName,
			&d.Specialization, &d.LicenseNumber, &d.PhoneNumber, &d.HospitalAffiliation); err != nil {
			return nil, err
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}
