package unit

import (
	"context"
	"testing"
	"time"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/domain"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/services"
	"github.com/AchilleasB/baby-kliniek/clinic-service/test/mocks"
)

func TestPatientService_Create(t *testing.T) {
	tests := []struct {
		name        string
		input       ports.CreatePatientInput
		expectError bool
		expectKind  domain.ErrorKind
	}{
		{
			name: "successful_registration",
			input: ports.CreatePatientInput{
				Name:         "Nguyễn Minh An",
				DateOfBirth:  "2022-03-15",
				Gender:       "male",
				GuardianName: "Nguyễn Văn Bình",
				Phone:        "0901234567",
			},
		},
		{
			name: "missing_guardian_rejected",
			input: ports.CreatePatientInput{
				Name:        "Nguyễn Minh An",
				DateOfBirth: "2022-03-15",
				Gender:      "male",
				Phone:       "0901234567",
			},
			expectError: true,
			expectKind:  domain.KindValidation,
		},
		{
			name: "invalid_gender_rejected",
			input: ports.CreatePatientInput{
				Name:         "Nguyễn Minh An",
				DateOfBirth:  "2022-03-15",
				Gender:       "other",
				GuardianName: "Nguyễn Văn Bình",
				Phone:        "0901234567",
			},
			expectError: true,
			expectKind:  domain.KindValidation,
		},
		{
			name: "malformed_birth_date_rejected",
			input: ports.CreatePatientInput{
				Name:         "Nguyễn Minh An",
				DateOfBirth:  "15-03-2022",
				Gender:       "male",
				GuardianName: "Nguyễn Văn Bình",
				Phone:        "0901234567",
			},
			expectError: true,
			expectKind:  domain.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockPatientRepository()
			service := services.NewPatientService(repo)

			patient, err := service.Create(context.Background(), tt.input)

			if tt.expectError {
				if !domain.IsKind(err, tt.expectKind) {
					t.Errorf("expected error kind %v, got %v", tt.expectKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if patient.ID == "" {
				t.Error("expected a generated ID")
			}
			if len(repo.CreateCalls) != 1 {
				t.Errorf("expected 1 Create call, got %d", len(repo.CreateCalls))
			}
		})
	}
}

// A duplicate phone surfaces as the repository's Conflict error, untouched.
func TestPatientService_Create_DuplicatePhone(t *testing.T) {
	repo := mocks.NewMockPatientRepository()
	repo.CreateError = domain.NewConflictError("Phone already registered", "Số điện thoại đã được đăng ký")
	service := services.NewPatientService(repo)

	_, err := service.Create(context.Background(), ports.CreatePatientInput{
		Name:         "Nguyễn Minh An",
		DateOfBirth:  "2022-03-15",
		Gender:       "male",
		GuardianName: "Nguyễn Văn Bình",
		Phone:        "0901234567",
	})
	if !domain.IsKind(err, domain.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

// Every patient read carries the derived calendar-month age.
func TestPatientService_Get_StampsAgeInMonths(t *testing.T) {
	repo := mocks.NewMockPatientRepository()
	repo.SeedPatient(mocks.TestPatient("patient-1")) // born 2022-03-15
	service := services.NewPatientService(repo)

	patient, err := service.Get(context.Background(), "patient-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dob, _ := domain.ParseDate(patient.DateOfBirth)
	want := domain.AgeInMonths(dob, time.Now())
	if patient.AgeInMonths != want {
		t.Errorf("expected age %d months, got %d", want, patient.AgeInMonths)
	}
	if patient.AgeInMonths == 0 {
		t.Error("expected a non-zero age for a 2022 birth date")
	}
}

func TestPatientService_List_StampsAgeInMonths(t *testing.T) {
	repo := mocks.NewMockPatientRepository()
	repo.SeedPatient(mocks.TestPatient("patient-1"))
	service := services.NewPatientService(repo)

	patients, _, err := service.List(context.Background(), domain.PatientFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patients) != 1 {
		t.Fatalf("expected 1 patient, got %d", len(patients))
	}
	if patients[0].AgeInMonths == 0 {
		t.Error("expected the listed patient to carry an age in months")
	}
}

// Deletion is restricted, not cascading: dependents block it.
func TestPatientService_Delete(t *testing.T) {
	repo := mocks.NewMockPatientRepository()
	repo.SeedPatient(mocks.TestPatient("patient-1"))
	repo.Dependents = true
	service := services.NewPatientService(repo)

	err := service.Delete(context.Background(), "patient-1")
	if !domain.IsKind(err, domain.KindConflict) {
		t.Errorf("expected conflict for patient with dependents, got %v", err)
	}
	if len(repo.DeleteCalls) != 0 {
		t.Errorf("expected no Delete call, got %d", len(repo.DeleteCalls))
	}

	repo.Dependents = false
	if err := service.Delete(context.Background(), "patient-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(repo.DeleteCalls) != 1 {
		t.Errorf("expected 1 Delete call, got %d", len(repo.DeleteCalls))
	}
}
