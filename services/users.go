package services

import (
	stderrors "errors"
	"strings"

	"github.com/Dominicushuy/bets-backend/auth"
	"github.com/Dominicushuy/bets-backend/config"
	"github.com/Dominicushuy/bets-backend/errors"
	"github.com/Dominicushuy/bets-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles registration, login tokens and profile reads.
type UserService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{db: db, cfg: cfg}
}

// Register creates a profile with a fresh referral code and returns a session
// token. An optional referral code links the new user to its referrer.
func (s *UserService) Register(email, password, name, referralCode string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var referredBy *uint
	if referralCode != "" {
		var referrer models.User
		if err := s.db.Where("referral_code = ?", referralCode).First(&referrer).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", errors.Validation("invalid referral code")
			}
			return nil, "", errors.Persistence(err)
		}
		referredBy = &referrer.ID
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.CodeInternal, "failed to hash password")
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         models.RoleUser,
		Level:        1,
		ReferralCode: newReferralCode(),
		ReferredBy:   referredBy,
	}
	// The unique index on email is the authority on duplicates: a pre-read
	// would still race with a concurrent insert.
	if err := s.db.Create(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", errors.New(errors.CodeConflict, "user already exists")
		}
		return nil, "", errors.Persistence(err)
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, user.ID, user.Email, s.cfg.JWTExpiration)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.CodeInternal, "failed to issue token")
	}
	return &user, token, nil
}

// Login checks credentials and issues a session token.
func (s *UserService) Login(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errors.New(errors.CodeUnauthorized, "invalid email or password")
		}
		return nil, "", errors.Persistence(err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", errors.New(errors.CodeUnauthorized, "invalid email or password")
	}

	token, err := auth.GenerateToken(s.cfg.JWTSecret, user.ID, user.Email, s.cfg.JWTExpiration)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.CodeInternal, "failed to issue token")
	}
	return &user, token, nil
}

func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "user not found")
		}
		return nil, errors.Persistence(err)
	}
	return &user, nil
}

// Notifications returns a user's notifications, newest first.
func (s *UserService) Notifications(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, errors.Persistence(err)
	}
	return notifications, nil
}

func newReferralCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
