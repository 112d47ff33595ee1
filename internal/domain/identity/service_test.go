package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carebridge/carebridge/internal/platform/auth"
)

type mockRepo struct {
	users    map[string]*User
	patients map[int]int // user_id -> patient_id
	doctors  map[int]int // user_id -> doctor_id
	nextID   int
	touched  []int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		users:    make(map[string]*User),
		patients: make(map[int]int),
		doctors:  make(map[int]int),
		nextID:   1,
	}
}

func (m *mockRepo) CreateUser(_ context.Context, u *User) error {
	if _, ok := m.users[u.Email]; ok {
		return ErrEmailTaken
	}
	u.UserID = m.nextID
	u.CreatedAt = time.Now()
	m.nextID++
	m.users[u.Email] = u
	return nil
}

func (m *mockRepo) UserByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) TouchLastLogin(_ context.Context, userID int) error {
	m.touched = append(m.touched, userID)
	return nil
}

func (m *mockRepo) CreatePatientProfile(_ context.Context, p *PatientProfile) error {
	p.PatientID = len(m.patients) + 1
	m.patients[p.UserID] = p.PatientID
	return nil
}

func (m *mockRepo) CreateDoctorProfile(_ context.Context, d *DoctorProfile) error {
	d.DoctorID = len(m.doctors) + 1
	m.doctors[d.UserID] = d.DoctorID
	return nil
}

func (m *mockRepo) PatientIDForUser(_ context.Context, userID int) (int, error) {
	id, ok := m.patients[userID]
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

func (m *mockRepo) DoctorIDForUser(_ context.Context, userID int) (int, error) {
	id, ok := m.doctors[userID]
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

func (m *mockRepo) PatientProfile(_ context.Context, patientID int) (*PatientProfile, error) {
	return &PatientProfile{PatientID: patientID}, nil
}

func (m *mockRepo) DoctorProfile(_ context.Context, doctorID int) (*DoctorProfile, error) {
	return &DoctorProfile{DoctorID: doctorID}, nil
}

func (m *mockRepo) ListDoctors(_ context.Context) ([]*DoctorProfile, error) {
	var out []*DoctorProfile
	for _, id := range m.doctors {
		out = append(out, &DoctorProfile{DoctorID: id})
	}
	return out, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, auth.NewTokenIssuer("test-secret", time.Hour), nil)
}

func patientInput(email string) RegisterInput {
	return RegisterInput{
		Email:     email,
		Password:  "s3cret-pass",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      RolePatient,
	}
}

func TestRegister_Patient(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	u, err := svc.Register(context.Background(), patientInput("ada@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.UserID == 0 {
		t.Error("expected user id to be assigned")
	}
	if u.PasswordHash == "s3cret-pass" {
		t.Error("password must not be stored in plaintext")
	}
	if _, err := repo.PatientIDForUser(context.Background(), u.UserID); err != nil {
		t.Errorf("expected a patient profile: %v", err)
	}
}

func TestRegister_Doctor(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	in := patientInput("greg@example.com")
	in.Role = RoleDoctor
	u, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.DoctorIDForUser(context.Background(), u.UserID); err != nil {
		t.Errorf("expected a doctor profile: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(newMockRepo())

	if _, err := svc.Register(context.Background(), patientInput("ada@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Register(context.Background(), patientInput("ada@example.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(newMockRepo())

	bad := []RegisterInput{
		{},
		{Email: "a@b.c", Password: "pw", FirstName: "A", LastName: "B", Role: "admin"},
		{Email: "a@b.c", Password: "pw", Role: RolePatient},
	}
	for _, in := range bad {
		if _, err := svc.Register(context.Background(), in); err == nil {
			t.Errorf("expected validation error for %+v", in)
		}
	}
}

func TestLogin(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	u, err := svc.Register(context.Background(), patientInput("ada@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, got, err := svc.Login(context.Background(), "ada@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
	if got.UserID != u.UserID {
		t.Errorf("expected user %d, got %d", u.UserID, got.UserID)
	}
	if len(repo.touched) != 1 || repo.touched[0] != u.UserID {
		t.Errorf("expected last_login to be touched for user %d, got %v", u.UserID, repo.touched)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(newMockRepo())
	if _, err := svc.Register(context.Background(), patientInput("ada@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "ada@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(newMockRepo())
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
