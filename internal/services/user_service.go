package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/auth"
	"github.com/jlbernardo/barangaylink/internal/models"
	apperrors "github.com/jlbernardo/barangaylink/pkg/errors"
	"github.com/jlbernardo/barangaylink/pkg/metrics"
)

// ErrEmailTaken indicates a registration attempt with an already registered email.
var ErrEmailTaken = apperrors.New("EMAIL_TAKEN", "Email already registered", http.StatusConflict)

// RegisterInput captures a resident self-registration.
type RegisterInput struct {
	Email         string
	Password      string
	FirstName     string
	MiddleName    string
	LastName      string
	Phone         string
	Mobile        string
	AddressStreet string
	AddressPurok  string
}

// LoginInput carries resident or staff credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned from both Register and Login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

// UserProfile is the public projection of an account.
type UserProfile struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
}

// UserService manages accounts: registration, authentication, and profile reads.
type UserService struct {
	db       *gorm.DB
	jwt      *auth.JWTService
	activity *ActivityService
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, jwt *auth.JWTService, activity *ActivityService) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	if jwt == nil {
		return nil, errors.New("user service: jwt service is required")
	}
	if activity == nil {
		return nil, errors.New("user service: activity service is required")
	}
	return &UserService{db: db, jwt: jwt, activity: activity}, nil
}

// Register creates an account with a hashed password, its profile row, and a
// welcome notification in one transaction, then issues a token.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	ctx = ensureContext(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, apperrors.NewBadRequest("Email and password are required.")
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewBadRequest("Password must be at least 8 characters.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("user service: hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
		Status:   models.UserStatusActive,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("user service: insert user: %w", err)
		}

		profile := models.UserProfile{
			UserID:        user.ID,
			FirstName:     strings.TrimSpace(input.FirstName),
			MiddleName:    strings.TrimSpace(input.MiddleName),
			LastName:      strings.TrimSpace(input.LastName),
			Phone:         strings.TrimSpace(input.Phone),
			Mobile:        strings.TrimSpace(input.Mobile),
			AddressStreet: strings.TrimSpace(input.AddressStreet),
			AddressPurok:  strings.TrimSpace(input.AddressPurok),
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("user service: insert profile: %w", err)
		}
		user.Profile = &profile

		notification := models.Notification{
			UserID:  user.ID,
			Type:    models.NotificationWelcome,
			Title:   "Welcome to BarangayLink",
			Message: "Your account has been created. You can now request barangay services online.",
		}
		if err := tx.Create(&notification).Error; err != nil {
			return fmt.Errorf("user service: insert welcome notification: %w", err)
		}

		userID := user.ID
		return s.activity.RecordTx(tx, ActivityEntry{
			UserID:     &userID,
			Action:     "register",
			Module:     "users",
			RecordID:   &userID,
			RecordType: "user",
		})
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrEmailTaken.WithInternal(err)
		}
		return nil, err
	}

	token, err := s.jwt.GenerateAccessToken(auth.AccessTokenInput{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("user service: issue token: %w", err)
	}

	return &AuthResult{Token: token, User: projectUser(&user)}, nil
}

// Login verifies credentials against the stored bcrypt hash and issues a token.
// Unknown emails and wrong passwords return the same error.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	ctx = ensureContext(ctx)

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Profile").
		Where("email = ? AND status = ?", email, models.UserStatusActive).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("user service: load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(auth.AccessTokenInput{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("user service: issue token: %w", err)
	}

	userID := user.ID
	if err := s.activity.Record(ctx, ActivityEntry{
		UserID:     &userID,
		Action:     "login",
		Module:     "users",
		RecordID:   &userID,
		RecordType: "user",
	}); err != nil {
		return nil, err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return &AuthResult{Token: token, User: projectUser(&user)}, nil
}

// GetProfile loads the public projection of one account.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*UserProfile, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Profile").
		First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("user service: load user: %w", err)
	}

	return projectUser(&user), nil
}

func projectUser(user *models.User) *UserProfile {
	projection := &UserProfile{
		ID:     user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
	}
	if profile := user.Profile; profile != nil {
		projection.FirstName = profile.FirstName
		projection.LastName = profile.LastName
		projection.FullName = profile.FullName()
		projection.Phone = profile.Phone
		projection.Mobile = profile.Mobile
	}
	return projection
}
