package services

import (
	"errors"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
	"transport-backend/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

// AuthService issues the role/email claims the notification feed filters on.
// Account provisioning itself lives outside this system.
type AuthService struct {
	userRepo repository.UserRepository
	jwtUtil  *jwt.JWTUtil
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwtUtil:  jwt.NewJWTUtil(),
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type LoginResponse struct {
	User  *models.AuthUser `json:"user"`
	Token string           `json:"token"`
}

func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	// Each dashboard is role-specific; a login must name the role it is for.
	if string(user.Role) != req.Role {
		return nil, errors.New("user does not have the required role")
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), user.Email, string(user.Role))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		User: &models.AuthUser{
			ID:        user.ID.Hex(),
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      user.Role,
			VehicleNo: user.VehicleNo,
		},
		Token: token,
	}, nil
}

// HashPassword is used when seeding directory accounts.
func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
