package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"zenith-backend/internal/config"
	"zenith-backend/internal/models"
	"zenith-backend/internal/repositories"
	"zenith-backend/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MarathonService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewMarathonService(repo *repositories.Repository, cfg *config.Config) *MarathonService {
	return &MarathonService{repo: repo, cfg: cfg}
}

var marathonCategories = map[string]bool{
	"5k": true, "10k": true, "half": true, "full": true,
}

// FormatMarathonNumber builds MAR{year}{ordinal zero-padded to 4 digits}. The
// ordinal is one global sequence across all race categories.
func FormatMarathonNumber(year, ordinal int64) string {
	return fmt.Sprintf("MAR%d%04d", year, ordinal)
}

type RegisterMarathonRequest struct {
	Name                  string
	Email                 string
	Phone                 string
	Age                   int
	Gender                string
	Category              string
	Institution           string
	City                  string
	EmergencyContactName  string
	EmergencyContactPhone string
	BloodGroup            string
	TShirtSize            string
}

func (s *MarathonService) RegisterMarathon(req RegisterMarathonRequest, reqCtx RequestContext) (*models.Marathon, error) {
	if !marathonCategories[req.Category] {
		return nil, errors.New("invalid marathon category")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Advisory pre-check; the unique email index is the real guard.
	if existing, err := s.repo.MarathonRepo.GetMarathonByEmail(email); err == nil && existing != nil {
		return nil, &DuplicateRegistrationError{RegistrationNumber: existing.RegistrationNumber}
	}

	entry := &models.Marathon{
		ID:                    uuid.New(),
		Name:                  req.Name,
		Email:                 email,
		Phone:                 req.Phone,
		Age:                   req.Age,
		Gender:                req.Gender,
		Category:              req.Category,
		Institution:           req.Institution,
		City:                  req.City,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		BloodGroup:            req.BloodGroup,
		TShirtSize:            req.TShirtSize,
		Status:                "pending",
		PaymentStatus:         "pending",
		IPAddress:             reqCtx.IPAddress,
		UserAgent:             reqCtx.UserAgent,
	}

	err := s.repo.MarathonRepo.Transaction(func(tx *gorm.DB) error {
		ordinal, err := repositories.NextSequence(tx, "marathon")
		if err != nil {
			return fmt.Errorf("failed to assign registration number: %w", err)
		}
		entry.RegistrationNumber = FormatMarathonNumber(int64(time.Now().Year()), ordinal)
		return s.repo.MarathonRepo.CreateMarathon(tx, entry)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, lookupErr := s.repo.MarathonRepo.GetMarathonByEmail(email); lookupErr == nil {
				return nil, &DuplicateRegistrationError{RegistrationNumber: existing.RegistrationNumber}
			}
			return nil, &DuplicateRegistrationError{}
		}
		return nil, err
	}

	logger.WithField("registration_number", entry.RegistrationNumber).Info("marathon registration created")
	return entry, nil
}

func (s *MarathonService) ListMarathons(page, pageSize int, filters *repositories.MarathonFilters) ([]models.Marathon, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	entries, total, err := s.repo.MarathonRepo.ListMarathons(offset, pageSize, filters)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return entries, total, totalPages, nil
}

// MarathonStats is assembled from one count query per bucket.
type MarathonStats struct {
	Total      int64            `json:"total"`
	ByCategory map[string]int64 `json:"by_category"`
	ByGender   map[string]int64 `json:"by_gender"`
	ByStatus   map[string]int64 `json:"by_status"`
}

func (s *MarathonService) GetStats() (*MarathonStats, error) {
	total, err := s.repo.MarathonRepo.CountMarathons()
	if err != nil {
		return nil, err
	}

	stats := &MarathonStats{
		Total:      total,
		ByCategory: make(map[string]int64),
		ByGender:   make(map[string]int64),
		ByStatus:   make(map[string]int64),
	}

	for category := range marathonCategories {
		count, err := s.repo.MarathonRepo.CountMarathonsWhere("category", category)
		if err != nil {
			return nil, err
		}
		stats.ByCategory[category] = count
	}
	for _, gender := range []string{"male", "female", "other"} {
		count, err := s.repo.MarathonRepo.CountMarathonsWhere("gender", gender)
		if err != nil {
			return nil, err
		}
		stats.ByGender[gender] = count
	}
	for _, status := range []string{"pending", "confirmed", "cancelled"} {
		count, err := s.repo.MarathonRepo.CountMarathonsWhere("status", status)
		if err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
	}

	return stats, nil
}

func (s *MarathonService) UpdateMarathon(id, status, paymentStatus string) (*models.Marathon, error) {
	entry, err := s.repo.MarathonRepo.GetMarathonByID(id)
	if err != nil {
		return nil, ErrMarathonNotFound
	}

	if status != "" {
		if !registrationStatuses[status] {
			return nil, errors.New("invalid status")
		}
		entry.Status = status
	}
	if paymentStatus != "" {
		if !paymentStatuses[paymentStatus] {
			return nil, errors.New("invalid payment status")
		}
		entry.PaymentStatus = paymentStatus
	}

	if err := s.repo.MarathonRepo.UpdateMarathon(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *MarathonService) DeleteMarathon(id string) error {
	if err := s.repo.MarathonRepo.DeleteMarathon(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMarathonNotFound
		}
		return err
	}
	return nil
}

var marathonCSVHeader = []string{
	"Registration Number", "Name", "Email", "Phone", "Age", "Gender", "Category",
	"Institution", "City", "Emergency Contact Name", "Emergency Contact Phone",
	"Blood Group", "T-Shirt Size", "Status", "Payment Status", "Registered At",
}

// BuildMarathonCSVRows flattens marathon entries, emergency contacts included.
func BuildMarathonCSVRows(entries []models.Marathon) [][]string {
	rows := [][]string{append([]string{}, marathonCSVHeader...)}
	for _, e := range entries {
		rows = append(rows, []string{
			e.RegistrationNumber,
			e.Name,
			e.Email,
			e.Phone,
			fmt.Sprintf("%d", e.Age),
			e.Gender,
			e.Category,
			e.Institution,
			e.City,
			e.EmergencyContactName,
			e.EmergencyContactPhone,
			e.BloodGroup,
			e.TShirtSize,
			e.Status,
			e.PaymentStatus,
			e.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func (s *MarathonService) ExportMarathonsCSV(filters *repositories.MarathonFilters) ([]byte, string, error) {
	entries, err := s.repo.MarathonRepo.FindMarathonsForExport(filters)
	if err != nil {
		return nil, "", err
	}

	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	if err := writer.WriteAll(BuildMarathonCSVRows(entries)); err != nil {
		return nil, "", fmt.Errorf("failed to write CSV: %w", err)
	}

	filename := fmt.Sprintf("marathon-registrations-%s.csv", time.Now().Format("20060102"))
	return []byte(sb.String()), filename, nil
}
