package identity

import "context"

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	UserByEmail(ctx context.Context, email string) (*User, error)
	TouchLastLogin(ctx context.Context, userID int) error

	CreatePatientProfile(ctx context.Context, p *PatientProfile) error
	CreateDoctorProfile(ctx context.Context, d *DoctorProfile) error

	PatientIDForUser(ctx context.Context, userID int) (int, error)
	DoctorIDForUser(ctx context.Context, userID int) (int, error)

	PatientProfile(ctx context.Context, patientID int) (*PatientProfile, error)
	DoctorProfile(ctx context.Context, doctorID int) (*DoctorProfile, error)
	ListDoctors(ctx context.Context) ([]*DoctorProfile, error)
}
