package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carebridge/carebridge/internal/platform/auth"
)

// TxRunner executes fn atomically. Production wiring backs it with db.WithTx;
// tests substitute a passthrough.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo   Repository
	issuer *auth.TokenIssuer
	runTx  TxRunner
}

func NewService(repo Repository, issuer *auth.TokenIssuer, runTx TxRunner) *Service {
	if runTx == nil {
		runTx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	return &Service{repo: repo, issuer: issuer, runTx: runTx}
}

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`

	// Patient fields.
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	PhoneNumber      *string    `json:"phone_number,omitempty"`
	Address          *string    `json:"address,omitempty"`
	EmergencyContact *string    `json:"emergency_contact,omitempty"`
	EmergencyPhone   *string    `json:"emergency_phone,omitempty"`

	// Doctor fields.
	Specialization      *string `json:"specialization,omitempty"`
	LicenseNumber       *string `json:"license_number,omitempty"`
	HospitalAffiliation *string `json:"hospital_affiliation,omitempty"`
}

func (in RegisterInput) validate() error {
	if in.Email == "" || in.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	if in.FirstName == "" || in.LastName == "" {
		return fmt.Errorf("first and last name are required")
	}
	if in.Role != RolePatient && in.Role != RoleDoctor {
		return fmt.Errorf("role must be %q or %q", RolePatient, RoleDoctor)
	}
	return nil
}

// Register creates the user row and its role-specific details row in one
// transaction, so a half-registered account can never exist.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
	}

	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateUser(ctx, u); err != nil {
			return err
		}
		switch in.Role {
		case RolePatient:
			return s.repo.CreatePatientProfile(ctx, &PatientProfile{
				UserID:           u.UserID,
				DateOfBirth:      in.DateOfBirth,
				Gender:           in.Gender,
				PhoneNumber:      in.PhoneNumber,
				Address:          in.Address,
				EmergencyContact: in.EmergencyContact,
				EmergencyPhone:   in.EmergencyPhone,
			})
		case RoleDoctor:
			return s.repo.CreateDoctorProfile(ctx, &DoctorProfile{
				UserID:              u.UserID,
				Specialization:      in.Specialization,
				LicenseNumber:       in.LicenseNumber,
				PhoneNumber:         in.PhoneNumber,
				HospitalAffiliation: in.HospitalAffiliation,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credentials and returns a signed token. Unknown emails and
// wrong passwords both map to ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.repo.UserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(u.UserID, u.Email, u.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	if err := s.repo.TouchLastLogin(ctx, u.UserID); err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *Service) PatientIDForUser(ctx context.Context, userID int) (int, error) {
	return s.repo.PatientIDForUser(ctx, userID)
}

func (s *Service) DoctorIDForUser(ctx context.Context, userID int) (int, error) {
	return s.repo.DoctorIDForUser(ctx, userID)
}

func (s *Service) PatientProfile(ctx context.Context, patientID int) (*PatientProfile, error) {
	return s.repo.PatientProfile(ctx, patientID)
}

func (s *Service) DoctorProfile(ctx context.Context, doctorID int) (*DoctorProfile, error) {
	return s.repo.DoctorProfile(ctx, doctorID)
}

// DoctorDisplayName returns the name a prescription is signed with.
func (s *Service) DoctorDisplayName(ctx context.Context, doctorID int) (string, error) {
	d, err := s.repo.DoctorProfile(ctx, doctorID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Dr. %s %s", d.FirstName, d.LastName), nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*DoctorProfile, error) {
	return s.repo.ListDoctors(ctx)
}
