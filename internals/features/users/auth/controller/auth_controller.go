package controller

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feesetu_backend/internals/features/users/auth/dto"
	"feesetu_backend/internals/features/users/auth/model"
	"feesetu_backend/internals/features/users/auth/service"
	helper "feesetu_backend/internals/helpers"
	helperAuth "feesetu_backend/internals/helpers/auth"
)

type AuthController struct {
	DB *gorm.DB
}

// POST /api/public/auth/register
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	user, err := service.Register(ctl.DB.WithContext(c.UserContext()), &in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "registered", fiber.Map{
		"id":        user.ID,
		"user_name": user.UserName,
		"email":     user.Email,
		"role":      user.Role,
	})
}

// POST /api/public/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	pair, err := service.Login(ctl.DB.WithContext(c.UserContext()), &in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "logged in", pair)
}

// POST /api/public/auth/login/google
func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var in dto.GoogleLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	pair, err := service.LoginWithGoogle(ctl.DB.WithContext(c.UserContext()), in.IDToken)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "logged in", pair)
}

// POST /api/public/auth/refresh-token
func (ctl *AuthController) RefreshToken(c *fiber.Ctx) error {
	var in dto.RefreshTokenRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	pair, err := service.Refresh(ctl.DB.WithContext(c.UserContext()), in.RefreshToken)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "token refreshed", pair)
}

// POST /api/u/auth/logout (any authenticated role)
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	raw, _ := c.Locals("raw_token").(string)
	if raw == "" {
		return helper.JsonError(c, http.StatusUnauthorized, "missing token")
	}

	if err := service.Logout(ctl.DB.WithContext(c.UserContext()), userID, raw); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "logged out", nil)
}

// GET /api/u/auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user model.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, http.StatusNotFound, "user not found")
	}
	return helper.JsonOK(c, "profile", user)
}
