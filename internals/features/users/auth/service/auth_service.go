package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"feesetu_backend/internals/configs"
	"feesetu_backend/internals/features/users/auth/dto"
	"feesetu_backend/internals/features/users/auth/model"
)

const (
	accessTokenTTL  = 2 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

/* =========================================================
   REGISTER / LOGIN
========================================================= */

// Register creates a parent account. Institution staff accounts are
// provisioned by the platform admin, never self-registered.
func Register(db *gorm.DB, req *dto.RegisterRequest) (*model.UserModel, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.UserModel{
		UserName: req.UserName,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
		Role:     model.RoleParent,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "email already registered")
		}
		return nil, err
	}
	return &user, nil
}

// Login checks credentials and issues a token pair.
func Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenPairResponse, error) {
	var user model.UserModel
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "account is disabled")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
	}
	return issueTokenPair(db, &user)
}

// LoginWithGoogle verifies the Google ID token, provisioning a parent
// account on first sign-in. Google accounts arrive email-verified.
func LoginWithGoogle(db *gorm.DB, idToken string) (*dto.TokenPairResponse, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{configs.GoogleClientID}); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid google token")
	}
	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid google token")
	}

	var user model.UserModel
	err = db.Where("google_id = ?", claims.Sub).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// same email registered with a password links to the google id
		err = db.Where("email = ?", strings.ToLower(claims.Email)).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = model.UserModel{
				UserName:        defaultName(claims.Name, claims.Email),
				Email:           strings.ToLower(claims.Email),
				Password:        "-", // never matches bcrypt
				Role:            model.RoleParent,
				IsActive:        true,
				IsEmailVerified: true,
			}
			user.GoogleID = &claims.Sub
			if err := db.Create(&user).Error; err != nil {
				return nil, err
			}
			return issueTokenPair(db, &user)
		}
		if err != nil {
			return nil, err
		}
		user.GoogleID = &claims.Sub
		user.IsEmailVerified = true
		if err := db.Save(&user).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "account is disabled")
	}
	return issueTokenPair(db, &user)
}

/* =========================================================
   TOKEN LIFECYCLE
========================================================= */

// Refresh rotates the refresh token and returns a fresh pair.
func Refresh(db *gorm.DB, rawRefresh string) (*dto.TokenPairResponse, error) {
	token, err := jwt.Parse(rawRefresh, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid refresh token")
	}

	digest := hmacHex(rawRefresh)
	var stored model.RefreshToken
	err = db.Where("token = ? AND expires_at > ?", digest, time.Now()).
		First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "refresh token revoked or expired")
	}
	if err != nil {
		return nil, err
	}

	var user model.UserModel
	if err := db.Where("id = ?", stored.UserID).First(&user).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "user not found")
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "account is disabled")
	}

	// single-use rotation
	if err := db.Delete(&stored).Error; err != nil {
		return nil, err
	}
	return issueTokenPair(db, &user)
}

// Logout blacklists the presented access token until its natural expiry
// and revokes every refresh token the user holds.
func Logout(db *gorm.DB, userID uuid.UUID, rawAccess string) error {
	expiredAt := time.Now().Add(accessTokenTTL)
	if token, _, err := jwt.NewParser().ParseUnverified(rawAccess, jwt.MapClaims{}); err == nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				expiredAt = time.Unix(int64(exp), 0)
			}
		}
	}

	entry := model.TokenBlacklist{
		Token:     hmacHex(rawAccess),
		ExpiredAt: expiredAt,
	}
	if err := db.Create(&entry).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	return db.Where("user_id = ?", userID).
		Delete(&model.RefreshToken{}).Error
}

// IsTokenBlacklisted is wired into the JWT middleware.
func IsTokenBlacklisted(db *gorm.DB, rawToken string) (bool, error) {
	var n int64
	err := db.Model(&model.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", hmacHex(rawToken), time.Now()).
		Count(&n).Error
	return n > 0, err
}

func issueTokenPair(db *gorm.DB, user *model.UserModel) (*dto.TokenPairResponse, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":     user.ID.String(),
		"user_id": user.ID.String(),
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenTTL).Unix(),
	}
	if user.UserInstitutionID != nil {
		accessClaims["institution_id"] = user.UserInstitutionID.String()
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshClaims := jwt.MapClaims{
		"sub": user.ID.String(),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTokenTTL).Unix(),
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return nil, err
	}

	row := model.RefreshToken{
		UserID:    user.ID,
		Token:     hmacHex(refresh),
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := db.Create(&row).Error; err != nil {
		return nil, err
	}

	return &dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(user),
	}, nil
}

func toUserResponse(u *model.UserModel) dto.UserResponse {
	out := dto.UserResponse{
		ID:              u.ID.String(),
		UserName:        u.UserName,
		Email:           u.Email,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
	}
	if u.UserInstitutionID != nil {
		s := u.UserInstitutionID.String()
		out.InstitutionID = &s
	}
	return out
}

// hmacHex keyed-hashes a token before it touches the database, so a DB
// leak does not leak usable tokens.
func hmacHex(raw string) string {
	mac := hmac.New(sha256.New, []byte(configs.JWTSecret))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

func defaultName(name, email string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	at := strings.IndexByte(email, '@')
	if at > 0 {
		return email[:at]
	}
	return email
}
