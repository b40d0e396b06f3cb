package clinics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	storage "github.com/clinicdesk/CDS-ClinicBookingService/internal/infra/storage/clinic"
	"github.com/clinicdesk/CDS-ClinicBookingService/internal/service/clinics/models"
)

// Service сервис управления клиниками
type Service struct {
	clinicRepo ClinicRepository
	log        Logger
}

func NewService(clinicRepo ClinicRepository, log Logger) *Service {
	return &Service{
		clinicRepo: clinicRepo,
		log:        log,
	}
}

// Create регистрирует новую клинику. Доступно только администратору.
func (s *Service) Create(ctx context.Context, req *models.CreateClinicRequest) (*models.ClinicResponse, error) {
	if !req.Caller.IsAdmin() {
		s.log.Warn("Service.Create - access denied for user %d (role %s)", req.Caller.UserID, req.Caller.Role)
		return nil, fmt.Errorf("%w: Create - caller is not an admin", ErrAccessDenied)
	}

	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if err := validateLocation(req.Location); err != nil {
		return nil, err
	}
	if err := validateCapacity(req.DailyCapacity); err != nil {
		return nil, err
	}

	clinic := &domain.Clinic{
		Name:          strings.TrimSpace(req.Name),
		Location:      strings.TrimSpace(req.Location),
		DailyCapacity: req.DailyCapacity,
		Status:        domain.ClinicStatusActive,
	}

	created, err := s.clinicRepo.Create(ctx, clinic)
	if err != nil {
		s.log.Error("Service.Create - failed to create clinic: %v", err)
		return nil, fmt.Errorf("%w: Create - create clinic: %v", ErrInternal, err)
	}

	s.log.Info("Service.Create - clinic %d created by admin %d", created.ID, req.Caller.UserID)
	return models.FromDomainClinic(created), nil
}

// GetByID возвращает клинику по идентификатору
func (s *Service) GetByID(ctx context.Context, clinicID int64) (*models.ClinicResponse, error) {
	if clinicID <= 0 {
		return nil, fmt.Errorf("%w: GetByID - clinic id must be positive", ErrInvalidInput)
	}

	clinic, err := s.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		if errors.Is(err, storage.ErrClinicNotFound) {
			return nil, fmt.Errorf("%w: GetByID - clinic %d", ErrClinicNotFound, clinicID)
		}
		if errors.Is(err, domain.ErrInvalidClinicRecord) {
			s.log.Error("Service.GetByID - clinic %d failed validation: %v", clinicID, err)
			return nil, fmt.Errorf("%w: GetByID - invalid clinic record: %v", ErrInternal, err)
		}
		s.log.Error("Service.GetByID - failed to get clinic %d: %v", clinicID, err)
		return nil, fmt.Errorf("%w: GetByID - get clinic: %v", ErrInternal, err)
	}

	return models.FromDomainClinic(clinic), nil
}

// List возвращает все клиники
func (s *Service) List(ctx context.Context) ([]*models.ClinicResponse, error) {
	clinics, err := s.clinicRepo.List(ctx)
	if err != nil {
		s.log.Error("Service.List - failed to list clinics: %v", err)
		return nil, fmt.Errorf("%w: List - list clinics: %v", ErrInternal, err)
	}

	return models.FromDomainClinicList(clinics), nil
}

// Update изменяет параметры клиники. Доступно только администратору.
// Nil-поля запроса остаются без изменений.
func (s *Service) Update(ctx context.Context, clinicID int64, req *models.UpdateClinicRequest) (*models.ClinicResponse, error) {
	if !req.Caller.IsAdmin() {
		s.log.Warn("Service.Update - access denied for user %d (role %s)", req.Caller.UserID, req.Caller.Role)
		return nil, fmt.Errorf("%w: Update - caller is not an admin", ErrAccessDenied)
	}
	if clinicID <= 0 {
		return nil, fmt.Errorf("%w: Update - clinic id must be positive", ErrInvalidInput)
	}

	clinic, err := s.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		if errors.Is(err, storage.ErrClinicNotFound) {
			return nil, fmt.Errorf("%w: Update - clinic %d", ErrClinicNotFound, clinicID)
		}
		s.log.Error("Service.Update - failed to get clinic %d: %v", clinicID, err)
		return nil, fmt.Errorf("%w: Update - get clinic: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return nil, err
		}
		clinic.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		if err := validateLocation(*req.Location); err != nil {
			return nil, err
		}
		clinic.Location = strings.TrimSpace(*req.Location)
	}
	if req.DailyCapacity != nil {
		if err := validateCapacity(req.DailyCapacity); err != nil {
			return nil, err
		}
		clinic.DailyCapacity = req.DailyCapacity
	}
	if req.Status != nil {
		status, ok := models.ToDomainClinicStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: Update - unknown status %q", ErrInvalidInput, *req.Status)
		}
		clinic.Status = status
	}

	updated, err := s.clinicRepo.Update(ctx, clinicID, clinic)
	if err != nil {
		if errors.Is(err, storage.ErrClinicNotFound) {
			return nil, fmt.Errorf("%w: Update - clinic %d", ErrClinicNotFound, clinicID)
		}
		s.log.Error("Service.Update - failed to update clinic %d: %v", clinicID, err)
		return nil, fmt.Errorf("%w: Update - update clinic: %v", ErrInternal, err)
	}

	s.log.Info("Service.Update - clinic %d updated by admin %d", clinicID, req.Caller.UserID)
	return models.FromDomainClinic(updated), nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: clinic name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClinicNameLength {
		return fmt.Errorf("%w: clinic name exceeds %d characters", ErrInvalidInput, domain.MaxClinicNameLength)
	}
	return nil
}

func validateLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return fmt.Errorf("%w: clinic location is required", ErrInvalidInput)
	}
	if len(location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: clinic location exceeds %d characters", ErrInvalidInput, domain.MaxLocationLength)
	}
	return nil
}

func validateCapacity(capacity *int) error {
	if capacity == nil {
		return nil
	}
	if *capacity < domain.MinDailyCapacity || *capacity > domain.MaxDailyCapacity {
		return fmt.Errorf("%w: daily capacity must be between %d and %d",
			ErrInvalidInput, domain.MinDailyCapacity, domain.MaxDailyCapacity)
	}
	return nil
}
