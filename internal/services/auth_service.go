package services

import (
	"errors"
	"strings"
	"time"

	"zenith-backend/internal/config"
	"zenith-backend/internal/models"
	"zenith-backend/internal/repositories"
	"zenith-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type AuthService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewAuthService(repo *repositories.Repository, cfg *config.Config) *AuthService {
	return &AuthService{repo: repo, cfg: cfg}
}

type LoginResponse struct {
	Token string        `json:"token"`
	Admin *models.Admin `json:"admin"`
}

// Authenticate accepts username or email as the login identifier.
func (s *AuthService) Authenticate(login, password string) (*LoginResponse, error) {
	login = strings.TrimSpace(strings.ToLower(login))

	if login == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	admin, err := s.repo.AdminRepo.GetAdminByUsernameOrEmail(login)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := utils.CheckPassword(password, admin.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !admin.IsActive {
		return nil, ErrAccountDeactivated
	}

	token, err := s.generateJWT(admin)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	now := time.Now()
	admin.LastLogin = &now
	if err := s.repo.AdminRepo.UpdateAdmin(admin); err != nil {
		return nil, err
	}

	admin.Password = ""
	return &LoginResponse{
		Token: token,
		Admin: admin,
	}, nil
}

var adminRoles = map[string]bool{
	"super_admin": true, "admin": true, "moderator": true,
}

func (s *AuthService) CreateAdmin(username, email, password, role string) (*models.Admin, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	email = strings.TrimSpace(strings.ToLower(email))
	role = strings.TrimSpace(strings.ToLower(role))

	if !adminRoles[role] {
		return nil, errors.New("invalid role: must be super_admin, admin, or moderator")
	}

	if existing, _ := s.repo.AdminRepo.GetAdminByUsernameOrEmail(username); existing != nil {
		return nil, errors.New("username already taken")
	}
	if existing, _ := s.repo.AdminRepo.GetAdminByUsernameOrEmail(email); existing != nil {
		return nil, errors.New("email already registered")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		IsActive: true,
	}

	if err := s.repo.AdminRepo.CreateAdmin(admin); err != nil {
		return nil, err
	}

	admin.Password = ""
	return admin, nil
}

func (s *AuthService) generateJWT(admin *models.Admin) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": admin.ID.String(),
		"username": admin.Username,
		"role":     admin.Role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) GetAdminProfile(adminID string) (*models.Admin, error) {
	admin, err := s.repo.AdminRepo.GetAdminByID(adminID)
	if err != nil {
		return nil, ErrAdminNotFound
	}

	admin.Password = ""
	return admin, nil
}

func (s *AuthService) ChangePassword(adminID, currentPassword, newPassword string) error {
	admin, err := s.repo.AdminRepo.GetAdminByID(adminID)
	if err != nil {
		return ErrAdminNotFound
	}

	if err := utils.CheckPassword(currentPassword, admin.Password); err != nil {
		return errors.New("current password is incorrect")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	admin.Password = hashed
	return s.repo.AdminRepo.UpdateAdmin(admin)
}

func (s *AuthService) ListAdmins() ([]models.Admin, error) {
	admins, err := s.repo.AdminRepo.ListAdmins()
	if err != nil {
		return nil, err
	}
	for i := range admins {
		admins[i].Password = ""
	}
	return admins, nil
}

func (s *AuthService) GetDashboardStats() (*repositories.DashboardCounts, error) {
	return s.repo.DashboardCounts()
}

// DeleteAdmin refuses to remove the caller's own account.
func (s *AuthService) DeleteAdmin(id, callerID string) error {
	if id == callerID {
		return ErrSelfDelete
	}

	if _, err := s.repo.AdminRepo.GetAdminByID(id); err != nil {
		return ErrAdminNotFound
	}

	return s.repo.AdminRepo.DeleteAdmin(id)
}
