package identity

import (
	"errors"
	"time"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("record not found")
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

type User struct {
	UserID       int        `db:"user_id" json:"user_id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Role         string     `db:"role" json:"role"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
}

// PatientProfile joins a user row with its patient_details row.
type PatientProfile struct {
	PatientID        int        `db:"patient_id" json:"patient_id"`
	UserID           int        `db:"user_id" json:"user_id"`
	Email            string     `db:"email" json:"email"`
	FirstName        string     `db:"first_name" json:"first_name"`
	LastName         string     `db:"last_name" json:"last_name"`
	DateOfBirth      *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender           *string    `db:"gender" json:"gender,omitempty"`
	PhoneNumber      *string    `db:"phone_number" json:"phone_number,omitempty"`
	Address          *string    `db:"address" json:"address,omitempty"`
	EmergencyContact *string    `db:"emergency_contact" json:"emergency_contact,omitempty"`
	EmergencyPhone   *string    `db:"emergency_phone" json:"emergency_phone,omitempty"`
}

// DoctorProfile joins a user row with its doctor_details row.
type DoctorProfile struct {
	DoctorID            int     `db:"doctor_id" json:"doctor_id"`
	UserID              int     `db:"user_id" json:"user_id"`
	Email               string  `db:"email" json:"email"`
	FirstName           string  `db:"first_name" json:"first_name"`
	LastName            string  `db:"last_name" json:"last_name"`
	Specialization      *string `db:"specialization" json:"specialization,omitempty"`
	LicenseNumber       *string `db:"license_number" json:"license_number,omitempty"`
	PhoneNumber         *string `db:"phone_number" json:"phone_number,omitempty"`
	HospitalAffiliation *string `db:"hospital_affiliation" json:"hospital_affiliation,omitempty"`
}
