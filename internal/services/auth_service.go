// internal/services/auth_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/webstore/backend/internal/apperrors"
	"github.com/webstore/backend/internal/models"
	"github.com/webstore/backend/internal/store"
	"github.com/webstore/backend/internal/utils"
)

type AuthService struct {
	users store.UserStore
	jwt   *utils.JWTManager
}

type RegisterRequest struct {
	Username     string `json:"username" validate:"required,username"`
	Password     string `json:"password" validate:"required,min=8"`
	PasswordConf string `json:"passwordConf" validate:"required"`
	Role         string `json:"role,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
	ConfirmNew  string `json:"confirmNew" validate:"required"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
}

func NewAuthService(users store.UserStore, jwt *utils.JWTManager) *AuthService {
	return &AuthService{
		users: users,
		jwt:   jwt,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation(fmt.Sprintf("validation failed: %v", err), map[string]interface{}{
			"username": req.Username,
		})
	}

	if req.Password != req.PasswordConf {
		return nil, apperrors.NewValidation("make sure the password matches the confirmation", map[string]interface{}{
			"username": req.Username,
		})
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.UserRoleCustomer
	}
	if role != models.UserRoleCustomer && role != models.UserRoleAdmin {
		return nil, apperrors.NewValidation("invalid role", map[string]interface{}{"role": req.Role})
	}

	user := &models.User{
		Username: req.Username,
		Role:     role,
		Cart:     models.CartLines{},
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation("username and password are required", nil)
	}

	user, err := s.users.ByUsername(req.Username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewValidation("invalid credentials", map[string]interface{}{"username": req.Username})
		}
		return nil, err
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.NewValidation("invalid credentials", map[string]interface{}{"username": req.Username})
	}

	accessToken, err := s.jwt.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}

func (s *AuthService) ChangePassword(userID uuid.UUID, req *ChangePasswordRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewValidation(fmt.Sprintf("validation failed: %v", err), nil)
	}

	if req.NewPassword != req.ConfirmNew {
		return nil, apperrors.NewValidation("make sure the password matches the confirmation", nil)
	}

	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}

	if err := user.CheckPassword(req.OldPassword); err != nil {
		return nil, apperrors.NewValidation("invalid credentials", map[string]interface{}{"username": user.Username})
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	return s.users.ByID(userID)
}
