package services

import (
	"errors"
	"time"

	"zenith-backend/internal/config"
	"zenith-backend/internal/models"
	"zenith-backend/internal/repositories"

	"github.com/google/uuid"
)

type EventService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewEventService(repo *repositories.Repository, cfg *config.Config) *EventService {
	return &EventService{repo: repo, cfg: cfg}
}

type CreateEventRequest struct {
	Name                 string
	Description          string
	Category             string
	RegistrationDeadline time.Time
	EventDate            time.Time
	MaxParticipants      *int
	RegistrationFee      float64
	IsPublished          bool
	CustomFields         []byte
	Coordinators         []byte
}

func (s *EventService) CreateEvent(req CreateEventRequest, adminID uuid.UUID) (*models.Event, error) {
	if !isValidCategory(req.Category) {
		return nil, errors.New("unknown sport category")
	}
	if req.EventDate.Before(req.RegistrationDeadline) {
		return nil, errors.New("event date must be after the registration deadline")
	}

	// One event per category, counting archived ones too.
	existing, err := s.repo.EventRepo.FindEventByCategory(req.Category, nil)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &CategoryConflictError{
			EventID:   existing.ID.String(),
			EventName: existing.Name,
			Category:  req.Category,
		}
	}

	event := &models.Event{
		ID:                   uuid.New(),
		Name:                 req.Name,
		Description:          req.Description,
		Category:             req.Category,
		RegistrationDeadline: req.RegistrationDeadline,
		EventDate:            req.EventDate,
		MaxParticipants:      req.MaxParticipants,
		RegistrationFee:      req.RegistrationFee,
		IsActive:             true,
		IsPublished:          req.IsPublished,
		CustomFields:         req.CustomFields,
		Coordinators:         req.Coordinators,
		CreatedBy:            adminID,
	}

	if err := s.repo.EventRepo.CreateEvent(event); err != nil {
		return nil, err
	}

	return event, nil
}

type UpdateEventRequest struct {
	Name                 *string
	Description          *string
	Category             *string
	RegistrationDeadline *time.Time
	EventDate            *time.Time
	MaxParticipants      *int
	ClearMaxParticipants bool
	RegistrationFee      *float64
	IsPublished          *bool
	CustomFields         []byte
	Coordinators         []byte
}

func (s *EventService) UpdateEvent(id string, req UpdateEventRequest, adminID uuid.UUID) (*models.Event, error) {
	event, err := s.repo.EventRepo.GetEventByID(id)
	if err != nil {
		return nil, ErrEventNotFound
	}

	if req.Category != nil && *req.Category != event.Category {
		if !isValidCategory(*req.Category) {
			return nil, errors.New("unknown sport category")
		}
		existing, err := s.repo.EventRepo.FindEventByCategory(*req.Category, &event.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &CategoryConflictError{
				EventID:   existing.ID.String(),
				EventName: existing.Name,
				Category:  *req.Category,
			}
		}
		event.Category = *req.Category
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.RegistrationDeadline != nil {
		event.RegistrationDeadline = *req.RegistrationDeadline
	}
	if req.EventDate != nil {
		event.EventDate = *req.EventDate
	}
	if req.ClearMaxParticipants {
		event.MaxParticipants = nil
	} else if req.MaxParticipants != nil {
		event.MaxParticipants = req.MaxParticipants
	}
	if req.RegistrationFee != nil {
		event.RegistrationFee = *req.RegistrationFee
	}
	if req.IsPublished != nil {
		event.IsPublished = *req.IsPublished
	}
	if req.CustomFields != nil {
		event.CustomFields = req.CustomFields
	}
	if req.Coordinators != nil {
		event.Coordinators = req.Coordinators
	}
	event.UpdatedBy = &adminID

	if err := s.repo.EventRepo.UpdateEvent(event); err != nil {
		return nil, err
	}

	return event, nil
}

// IsRegistrationOpen is evaluated at read time, never cached.
func IsRegistrationOpen(event *models.Event, now time.Time) bool {
	if !event.IsActive || !event.IsPublished {
		return false
	}
	return !now.After(event.RegistrationDeadline)
}

// IsFullWithCount applies the capacity rule to a live registration count.
// A nil MaxParticipants means unlimited.
func IsFullWithCount(event *models.Event, activeCount int64) bool {
	if event.MaxParticipants == nil {
		return false
	}
	return activeCount >= int64(*event.MaxParticipants)
}

func (s *EventService) IsFull(event *models.Event) (bool, error) {
	if event.MaxParticipants == nil {
		return false, nil
	}
	count, err := s.repo.RegistrationRepo.CountActiveRegistrationsByEvent(event.ID.String())
	if err != nil {
		return false, err
	}
	return IsFullWithCount(event, count), nil
}

func (s *EventService) DeleteEvent(id string) error {
	if _, err := s.repo.EventRepo.GetEventByID(id); err != nil {
		return ErrEventNotFound
	}

	count, err := s.repo.RegistrationRepo.CountRegistrationsByEvent(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrEventHasRegistrations
	}

	return s.repo.EventRepo.DeleteEvent(id)
}

func (s *EventService) ToggleEventStatus(id string, adminID uuid.UUID) (*models.Event, error) {
	event, err := s.repo.EventRepo.GetEventByID(id)
	if err != nil {
		return nil, ErrEventNotFound
	}

	event.IsActive = !event.IsActive
	event.UpdatedBy = &adminID

	if err := s.repo.EventRepo.UpdateEvent(event); err != nil {
		return nil, err
	}

	return event, nil
}

// EventView decorates an event with its computed registration state.
type EventView struct {
	models.Event
	RegistrationOpen bool  `json:"registration_open"`
	Full             bool  `json:"full"`
	RegisteredCount  int64 `json:"registered_count"`
}

func (s *EventService) ListEvents(page, pageSize int, filters *repositories.EventFilters) ([]EventView, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	events, total, err := s.repo.EventRepo.ListEvents(offset, pageSize, filters)
	if err != nil {
		return nil, 0, 0, err
	}

	views := make([]EventView, 0, len(events))
	now := time.Now()
	for i := range events {
		view, err := s.buildEventView(&events[i], now)
		if err != nil {
			return nil, 0, 0, err
		}
		views = append(views, *view)
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return views, total, totalPages, nil
}

func (s *EventService) GetEvent(id string) (*EventView, error) {
	event, err := s.repo.EventRepo.GetEventByID(id)
	if err != nil {
		return nil, ErrEventNotFound
	}
	return s.buildEventView(event, time.Now())
}

func (s *EventService) buildEventView(event *models.Event, now time.Time) (*EventView, error) {
	count, err := s.repo.RegistrationRepo.CountActiveRegistrationsByEvent(event.ID.String())
	if err != nil {
		return nil, err
	}
	return &EventView{
		Event:            *event,
		RegistrationOpen: IsRegistrationOpen(event, now),
		Full:             IsFullWithCount(event, count),
		RegisteredCount:  count,
	}, nil
}

func isValidCategory(category string) bool {
	for _, c := range models.SportCategories() {
		if c == category {
			return true
		}
	}
	return false
}
