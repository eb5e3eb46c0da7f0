package rider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"service-rider-platform/internal/apperr"
	"service-rider-platform/internal/domain"
)

// Service coordinates rider business logic and orchestrates repository calls.
type Service struct {
	repo             riderRepository
	operationTimeout time.Duration
}

// NewService creates and configures a rider Service.
func NewService(r riderRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", apperr.ErrInvalid, msg)
}

// validateCreate validates a rider for creation and fills defaults.
func validateCreate(r *domain.Rider) error {
	if r == nil {
		return invalid("rider is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return invalid("name is required")
	}
	if !domain.ValidatePhone(r.Phone) {
		return invalid("phone must be + followed by 11 digits")
	}
	if r.Status == "" {
		r.Status = domain.RiderAvailable
	}
	if !r.Status.Valid() {
		return invalid("unknown status")
	}
	if r.TransportType == "" {
		r.TransportType = domain.TransportTypeFoot
	}
	if !r.TransportType.Valid() {
		return invalid("unknown transport type")
	}
	return nil
}

func validateUpdate(u *domain.PartialRiderUpdate) error {
	if u.ID <= 0 {
		return invalid("id is required")
	}
	if u.Name == nil && u.Phone == nil && u.Status == nil && u.TransportType == nil {
		return invalid("nothing to update")
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return invalid("name is empty")
	}
	if u.Phone != nil && !domain.ValidatePhone(*u.Phone) {
		return invalid("phone must be + followed by 11 digits")
	}
	if u.Status != nil && !u.Status.Valid() {
		return invalid("unknown status")
	}
	if u.TransportType != nil && !u.TransportType.Valid() {
		return invalid("unknown transport type")
	}
	return nil
}

// Get retrieves a rider by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Rider, error) {
	if id <= 0 {
		return nil, invalid("id must be positive")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperr.ErrNotFound
	}
	return r, nil
}

// List returns riders with optional pagination
func (s *Service) List(ctx context.Context, limit, offset *int) ([]domain.Rider, error) {
	if (limit != nil && *limit < 0) || (offset != nil && *offset < 0) {
		return nil, invalid("limit and offset must not be negative")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, limit, offset)
}

// Create persists a new rider and returns its generated ID.
func (s *Service) Create(ctx context.Context, r *domain.Rider) (int64, error) {
	if err := validateCreate(r); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, r)
}

// UpdatePartial applies a partial update to a rider. It returns true if a row was updated.
func (s *Service) UpdatePartial(ctx context.Context, u domain.PartialRiderUpdate) (bool, error) {
	if err := validateUpdate(&u); err != nil {
		return false, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.ErrNotFound
	}
	return true, nil
}

// SetStatus changes the availability of a rider.
func (s *Service) SetStatus(ctx context.Context, id int64, status domain.RiderStatus) error {
	_, err := s.UpdatePartial(ctx, domain.PartialRiderUpdate{ID: id, Status: &status})
	return err
}
