package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dfarias/merenda-gateway-go/pkg/database"
)

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))
var jwtAlgorithm = jwt.SigningMethodHS256

// Role levels as the kitchen backend encodes them
const (
	LevelInspector    = 1
	LevelNutritionist = 2
	LevelPrincipal    = 3
)

// SessionClaims is the gateway session token. It wraps the kitchen
// backend's bearer token so each request can be replayed against the
// backend on the user's behalf, plus the identity the shell needs for
// routing. UpstreamToken never leaves the gateway in clear form.
type SessionClaims struct {
	UserID        int    `json:"user_id"`
	Name          string `json:"name"`
	Level         int    `json:"level"`
	UpstreamToken string `json:"upstream_token"`
	jwt.RegisteredClaims
}

// CreateSessionToken mints a gateway session for a logged-in user
func CreateSessionToken(userID int, name string, level int, upstreamToken string) (string, error) {
	expirationTime := time.Now().Add(12 * time.Hour)
	claims := &SessionClaims{
		UserID:        userID,
		Name:          name,
		Level:         level,
		UpstreamToken: upstreamToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(jwtSecret)
}

// VerifySessionToken verifies a gateway session token
func VerifySessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// AdminClaims is the token for the gateway's own operator interface
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// CreateAdminToken creates a token for a gateway operator
func CreateAdminToken(username string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(jwtSecret)
}

// VerifyAdminToken verifies a gateway operator token
func VerifyAdminToken(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// EnsureAdminExists checks if any gateway operator exists, if not
// create one from environment variables.
func EnsureAdminExists(db *gorm.DB) error {
	var count int64
	db.Model(&database.MasterUser{}).Count(&count)

	if count == 0 {
		username := os.Getenv("ADMIN_USERNAME")
		if username == "" {
			username = "admin"
		}
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "admin123"
		}

		hash, err := HashPassword(password)
		if err != nil {
			return err
		}

		user := database.MasterUser{
			Username:     username,
			PasswordHash: hash,
		}

		err = db.Create(&user).Error
		if err == nil {
			println("Default gateway admin created: " + username)
		}
		return err
	}
	return nil
}

// GenerateDeviceKey creates a signed kiosk device key using HMAC-SHA256.
// Kitchen tablets present it on the counting endpoints instead of a
// per-person session.
func GenerateDeviceKey(deviceID string) string {
	secret := os.Getenv("DEVICE_MASTER_SECRET")
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(deviceID))
	signature := hex.EncodeToString(h.Sum(nil))
	return deviceID + "." + signature
}

// VerifyDeviceKey validates an HMAC-signed device key
func VerifyDeviceKey(key string) (string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", errors.New("invalid key format")
	}

	deviceID := parts[0]
	providedSignature := parts[1]

	secret := os.Getenv("DEVICE_MASTER_SECRET")
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(deviceID))
	expectedSignature := hex.EncodeToString(h.Sum(nil))

	// Use constant-time comparison to prevent timing attacks
	if !hmac.Equal([]byte(providedSignature), []byte(expectedSignature)) {
		return "", errors.New("invalid signature")
	}

	return deviceID, nil
}
