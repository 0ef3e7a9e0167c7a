package services

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"zenith-backend/internal/config"
	"zenith-backend/internal/models"
	"zenith-backend/internal/repositories"
	"zenith-backend/internal/utils"
	"zenith-backend/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewRegistrationService(repo *repositories.Repository, cfg *config.Config) *RegistrationService {
	return &RegistrationService{repo: repo, cfg: cfg}
}

// DocumentFiles are the three required upload parts of a registration.
type DocumentFiles struct {
	PermissionLetter   *multipart.FileHeader
	TransactionReceipt *multipart.FileHeader
	CaptainIDCard      *multipart.FileHeader
}

// fieldAlias maps a canonical promoted column to the form keys that may carry
// it. Order matters: the first non-empty alias wins. Kept as one table so the
// mapping is testable in isolation instead of scattered fallback chains.
type fieldAlias struct {
	Canonical string
	Keys      []string
	Required  bool
}

var fieldAliases = []fieldAlias{
	{Canonical: "email", Required: true, Keys: []string{"email", "Email", "Email ID", "email_id"}},
	{Canonical: "name", Required: true, Keys: []string{"name", "Name", "Full Name", "fullName", "full_name", "Team Name", "teamName"}},
	{Canonical: "phone", Keys: []string{"phone", "Phone", "Mobile", "mobile", "Phone Number", "phone_number", "contact"}},
	{Canonical: "institution", Keys: []string{"institution", "Institution", "College", "college", "College Name", "college_name", "university"}},
	{Canonical: "city", Keys: []string{"city", "City", "Town", "town"}},
}

// ResolvePromotedFields extracts the canonical scalar fields from a dynamic form
// payload via the alias table. Returns an error naming the first missing
// mandatory field.
func ResolvePromotedFields(formData map[string]interface{}) (map[string]string, error) {
	resolved := make(map[string]string, len(fieldAliases))
	for _, alias := range fieldAliases {
		value := ""
		for _, key := range alias.Keys {
			if raw, ok := formData[key]; ok {
				if s := stringifyFormValue(raw); s != "" {
					value = s
					break
				}
			}
		}
		if value == "" && alias.Required {
			return nil, fmt.Errorf("%s is required", alias.Canonical)
		}
		resolved[alias.Canonical] = value
	}
	return resolved, nil
}

func stringifyFormValue(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", v), "0"), ".")
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// EventNumberPrefix derives the registration-number prefix from an event name:
// its first three letters, uppercased.
func EventNumberPrefix(eventName string) string {
	runes := []rune(strings.TrimSpace(eventName))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// FormatRegistrationNumber builds {prefix}-{last 6 digits of epoch ms}-{ordinal}.
func FormatRegistrationNumber(eventName string, at time.Time, ordinal int64) string {
	return fmt.Sprintf("%s-%06d-%d", EventNumberPrefix(eventName), at.UnixMilli()%1000000, ordinal)
}

func (s *RegistrationService) CreateRegistration(eventID, rawFormData string, files DocumentFiles, reqCtx RequestContext) (*models.Registration, error) {
	// formData arrives as a JSON string inside the multipart body.
	var formData map[string]interface{}
	if err := json.Unmarshal([]byte(rawFormData), &formData); err != nil {
		return nil, errors.New("formData must be a valid JSON object")
	}

	event, err := s.repo.EventRepo.GetEventByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	if !IsRegistrationOpen(event, time.Now()) {
		return nil, ErrRegistrationClosed
	}

	if err := s.validateDocuments(files); err != nil {
		return nil, err
	}

	promoted, err := ResolvePromotedFields(formData)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(promoted["email"])

	// Advisory pre-check so the conflict response can echo the existing number.
	// The unique index is the real guard.
	if existing, err := s.repo.RegistrationRepo.GetRegistrationByEventAndEmail(eventID, email); err == nil && existing != nil {
		return nil, &DuplicateRegistrationError{RegistrationNumber: existing.RegistrationNumber}
	}

	// Track saved paths so a failed submission leaves no orphans on disk.
	docDir := filepath.Join(s.cfg.UploadDir, "documents")
	var savedFiles []string
	saveDoc := func(file *multipart.FileHeader) (string, error) {
		filename := utils.GenerateUniqueFilename(file.Filename)
		if err := utils.SaveUploadedFile(file, docDir, filename); err != nil {
			return "", fmt.Errorf("failed to save document: %w", err)
		}
		savedFiles = append(savedFiles, filepath.Join(docDir, filename))
		return "/uploads/documents/" + filename, nil
	}

	permissionPath, err := saveDoc(files.PermissionLetter)
	if err != nil {
		utils.RemoveFiles(savedFiles)
		return nil, err
	}
	receiptPath, err := saveDoc(files.TransactionReceipt)
	if err != nil {
		utils.RemoveFiles(savedFiles)
		return nil, err
	}
	idCardPath, err := saveDoc(files.CaptainIDCard)
	if err != nil {
		utils.RemoveFiles(savedFiles)
		return nil, err
	}

	paymentStatus := "not_required"
	if event.RegistrationFee > 0 {
		paymentStatus = "pending"
	}

	reg := &models.Registration{
		ID:                 uuid.New(),
		EventID:            event.ID,
		EventName:          event.Name,
		Email:              email,
		Name:               promoted["name"],
		Phone:              promoted["phone"],
		Institution:        promoted["institution"],
		City:               promoted["city"],
		FormData:           formData,
		Status:             "pending",
		PaymentStatus:      paymentStatus,
		Amount:             event.RegistrationFee,
		PermissionLetter:   permissionPath,
		TransactionReceipt: receiptPath,
		CaptainIDCard:      idCardPath,
		IPAddress:          reqCtx.IPAddress,
		UserAgent:          reqCtx.UserAgent,
	}

	err = s.repo.RegistrationRepo.Transaction(func(tx *gorm.DB) error {
		// Re-check capacity inside the transaction; the count is still advisory
		// but narrows the window considerably.
		full, err := s.isFullTx(tx, event)
		if err != nil {
			return err
		}
		if full {
			return ErrEventFull
		}

		ordinal, err := repositories.NextSequence(tx, "event:"+event.ID.String())
		if err != nil {
			return fmt.Errorf("failed to assign registration number: %w", err)
		}
		reg.RegistrationNumber = FormatRegistrationNumber(event.Name, time.Now(), ordinal)

		if err := s.repo.RegistrationRepo.CreateRegistration(tx, reg); err != nil {
			return err
		}

		qrDir := filepath.Join(s.cfg.UploadDir, "qrcodes")
		filename, err := utils.GenerateQRCodeImage(reg.RegistrationNumber, qrDir)
		if err != nil {
			return fmt.Errorf("failed to generate confirmation QR: %w", err)
		}
		reg.QRPath = "/uploads/qrcodes/" + filename

		return tx.Model(reg).Update("qr_path", reg.QRPath).Error
	})
	if err != nil {
		// The row never landed; drop the documents saved above.
		utils.RemoveFiles(savedFiles)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent submission; report the winner's number.
			if existing, lookupErr := s.repo.RegistrationRepo.GetRegistrationByEventAndEmail(eventID, email); lookupErr == nil {
				return nil, &DuplicateRegistrationError{RegistrationNumber: existing.RegistrationNumber}
			}
			return nil, &DuplicateRegistrationError{}
		}
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"event":               event.Name,
		"registration_number": reg.RegistrationNumber,
	}).Info("registration created")

	return reg, nil
}

func (s *RegistrationService) validateDocuments(files DocumentFiles) error {
	required := []struct {
		name string
		file *multipart.FileHeader
	}{
		{"permissionLetter", files.PermissionLetter},
		{"transactionReceipt", files.TransactionReceipt},
		{"captainIdCard", files.CaptainIDCard},
	}
	for _, doc := range required {
		if doc.file == nil || doc.file.Size == 0 {
			return fmt.Errorf("%s document is required", doc.name)
		}
		if err := utils.ValidateDocumentFile(doc.file, s.cfg.MaxFileSize); err != nil {
			return fmt.Errorf("%s: %w", doc.name, err)
		}
	}
	return nil
}

func (s *RegistrationService) isFullTx(tx *gorm.DB, event *models.Event) (bool, error) {
	if event.MaxParticipants == nil {
		return false, nil
	}
	var count int64
	if err := tx.Model(&models.Registration{}).
		Where("event_id = ? AND status IN ?", event.ID, []string{"pending", "confirmed"}).
		Count(&count).Error; err != nil {
		return false, err
	}
	return IsFullWithCount(event, count), nil
}

func (s *RegistrationService) GetRegistration(id string) (*models.Registration, error) {
	reg, err := s.repo.RegistrationRepo.GetRegistrationByID(id)
	if err != nil {
		return nil, ErrRegistrationNotFound
	}
	return reg, nil
}

func (s *RegistrationService) ListRegistrations(page, pageSize int, filters *repositories.RegistrationFilters) ([]models.Registration, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	regs, total, err := s.repo.RegistrationRepo.ListRegistrations(offset, pageSize, filters)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := (int(total) + pageSize - 1) / pageSize
	return regs, total, totalPages, nil
}

var registrationStatuses = map[string]bool{
	"pending": true, "confirmed": true, "cancelled": true, "waitlist": true,
}

var paymentStatuses = map[string]bool{
	"pending": true, "completed": true, "failed": true, "not_required": true,
}

func (s *RegistrationService) UpdateRegistration(id, status, paymentStatus string) (*models.Registration, error) {
	reg, err := s.repo.RegistrationRepo.GetRegistrationByID(id)
	if err != nil {
		return nil, ErrRegistrationNotFound
	}

	if status != "" {
		if !registrationStatuses[status] {
			return nil, errors.New("invalid status")
		}
		reg.Status = status
	}
	if paymentStatus != "" {
		if !paymentStatuses[paymentStatus] {
			return nil, errors.New("invalid payment status")
		}
		reg.PaymentStatus = paymentStatus
	}

	if err := s.repo.RegistrationRepo.UpdateRegistration(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *RegistrationService) DeleteRegistration(id string) error {
	if err := s.repo.RegistrationRepo.DeleteRegistration(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		return err
	}
	return nil
}

// EventAnalytics aggregates per-event registration statistics for the dashboard.
type EventAnalytics struct {
	EventID          string                      `json:"event_id"`
	EventName        string                      `json:"event_name"`
	Total            int64                       `json:"total"`
	StatusBreakdown  []repositories.StatusCount  `json:"status_breakdown"`
	PaymentBreakdown []repositories.PaymentCount `json:"payment_breakdown"`
	TopInstitutions  []repositories.NameCount    `json:"top_institutions"`
	TopCities        []repositories.NameCount    `json:"top_cities"`
	DailyCounts      []repositories.DayCount     `json:"daily_counts"`
}

func (s *RegistrationService) GetEventAnalytics(eventID string) (*EventAnalytics, error) {
	event, err := s.repo.EventRepo.GetEventByID(eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	total, err := s.repo.RegistrationRepo.CountRegistrationsByEvent(eventID)
	if err != nil {
		return nil, err
	}
	statuses, err := s.repo.RegistrationRepo.StatusBreakdown(eventID)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.RegistrationRepo.PaymentBreakdown(eventID)
	if err != nil {
		return nil, err
	}
	institutions, err := s.repo.RegistrationRepo.TopInstitutions(eventID, 10)
	if err != nil {
		return nil, err
	}
	cities, err := s.repo.RegistrationRepo.TopCities(eventID, 10)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.RegistrationRepo.DailyCounts(eventID)
	if err != nil {
		return nil, err
	}

	return &EventAnalytics{
		EventID:          eventID,
		EventName:        event.Name,
		Total:            total,
		StatusBreakdown:  statuses,
		PaymentBreakdown: payments,
		TopInstitutions:  institutions,
		TopCities:        cities,
		DailyCounts:      daily,
	}, nil
}

// Fixed CSV columns for registration exports; dynamic form keys follow.
var registrationCSVHeader = []string{
	"Registration Number", "Name", "Email", "Phone", "Institution", "City",
	"Status", "Payment Status", "Amount", "Registered At",
}

var promotedColumns = map[string]bool{
	"email": true, "name": true, "phone": true, "institution": true, "city": true,
}

// BuildRegistrationCSVRows flattens registrations into CSV rows. Dynamic form
// keys become extra columns unless they duplicate a promoted scalar column
// case-insensitively; audit fields never appear.
func BuildRegistrationCSVRows(regs []models.Registration) [][]string {
	extraKeys := make([]string, 0)
	seen := make(map[string]bool)
	for _, reg := range regs {
		for key := range reg.FormData {
			if promotedColumns[strings.ToLower(key)] || seen[key] {
				continue
			}
			seen[key] = true
			extraKeys = append(extraKeys, key)
		}
	}
	sort.Strings(extraKeys)

	header := append(append([]string{}, registrationCSVHeader...), extraKeys...)
	rows := [][]string{header}

	for _, reg := range regs {
		row := []string{
			reg.RegistrationNumber,
			reg.Name,
			reg.Email,
			reg.Phone,
			reg.Institution,
			reg.City,
			reg.Status,
			reg.PaymentStatus,
			fmt.Sprintf("%.2f", reg.Amount),
			reg.CreatedAt.Format(time.RFC3339),
		}
		for _, key := range extraKeys {
			row = append(row, stringifyFormValue(reg.FormData[key]))
		}
		rows = append(rows, row)
	}

	return rows
}

func (s *RegistrationService) ExportRegistrationsCSV(eventID string, filters *repositories.RegistrationFilters) ([]byte, string, error) {
	event, err := s.repo.EventRepo.GetEventByID(eventID)
	if err != nil {
		return nil, "", ErrEventNotFound
	}

	regs, err := s.repo.RegistrationRepo.FindRegistrationsForExport(eventID, filters)
	if err != nil {
		return nil, "", err
	}

	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	if err := writer.WriteAll(BuildRegistrationCSVRows(regs)); err != nil {
		return nil, "", fmt.Errorf("failed to write CSV: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("registrations-%s-%s.csv",
		strings.ReplaceAll(strings.ToLower(event.Name), " ", "-"),
		time.Now().Format("20060102"),
	)
	return []byte(sb.String()), filename, nil
}
