package services

import (
	"errors"
	"time"

	"tableside/entity"
	"tableside/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService struct {
	DB     *gorm.DB
	Secret string
	TTL    time.Duration
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: secret, TTL: ttl}
}

func (s *AuthService) Login(username, password string) (string, error) {
	var st entity.Staff
	if err := s.DB.Where("username = ?", username).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateToken(st.ID, st.Username, s.Secret, s.TTL)
}
