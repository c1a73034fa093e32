package controllers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"journal-review-api/middleware"
	"journal-review-api/models"
	"journal-review-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Affiliation string `json:"affiliation" binding:"required"`
	Role        string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
	Message      string      `json:"message"`
}

// Register creates a new account. Role defaults to author; editorial roles
// are granted through admin user management, never self-assigned.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	if !utils.ValidateEmail(req.Email) {
		respondValidation(c, "Invalid email address")
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		respondValidation(c, msg)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleAuthor
	}
	if role != models.RoleAuthor && role != models.RoleReviewer {
		respondValidation(c, "Role must be author or reviewer")
		return
	}

	if _, err := userRepo.FindByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict", "message": "Email is already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": "Failed to check existing users"})
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": "Failed to hash password"})
		return
	}

	now := time.Now()
	user := models.User{
		Email:       req.Email,
		Password:    hashed,
		FirstName:   utils.SanitizeInput(req.FirstName),
		LastName:    utils.SanitizeInput(req.LastName),
		Affiliation: utils.SanitizeInput(req.Affiliation),
		Role:        role,
		IsActive:    true,
		CreateAt:    &now,
		UpdateAt:    &now,
	}

	if err := userRepo.Create(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": "Failed to create user"})
		return
	}

	token, refreshToken, err := issueTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
		Message:      "Registration successful",
	})
}

// Login handles user authentication
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	user, err := userRepo.FindByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication Error", "message": "Invalid email or password"})
		return
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication Error", "message": "Invalid email or password"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication Error", "message": "Account is deactivated"})
		return
	}

	token, refreshToken, err := issueTokens(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         *user,
		Message:      "Login successful",
	})
}

// RefreshToken rotates a stored refresh token into a fresh token pair.
func RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	now := time.Now()
	stored, err := tokenRepo.FindActiveByHash(hashToken(req.RefreshToken), "refresh", now)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication Error", "message": "Invalid or expired refresh token"})
		return
	}

	user, err := userRepo.FindByID(stored.UserID)
	if err != nil || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication Error", "message": "User not found"})
		return
	}

	// Rotate: the presented token is revoked before a new pair is issued.
	if err := tokenRepo.Revoke(stored.TokenID, now); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": "Failed to rotate token"})
		return
	}

	token, refreshToken, err := issueTokens(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         *user,
		Message:      "Token refreshed",
	})
}

// Logout revokes the presented refresh token.
func Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	now := time.Now()
	stored, err := tokenRepo.FindActiveByHash(hashToken(req.RefreshToken), "refresh", now)
	if err == nil {
		if err := tokenRepo.Revoke(stored.TokenID, now); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": "Failed to revoke token"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile returns current user profile
func GetProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	user, err := userRepo.FindByID(userID.(int))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found", "message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ChangePassword handles password change
func ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		respondValidation(c, msg)
		return
	}

	userID, _ := c.Get("userID")
	user, err := userRepo.FindByID(userID.(int))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found", "message": "User not found"})
		return
	}

	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication Error", "message": "Current password is incorrect"})
		return
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": "Failed to hash password"})
		return
	}

	now := time.Now()
	user.Password = hashed
	user.UpdateAt = &now

	if err := userRepo.Save(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// issueTokens creates an access token plus a stored, revocable refresh token.
func issueTokens(user models.User) (string, string, error) {
	token, err := generateToken(user)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return "", "", err
	}

	expireHours, err := strconv.Atoi(os.Getenv("REFRESH_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 720 // default 30 days
	}

	now := time.Now()
	stored := models.UserToken{
		UserID:    user.UserID,
		TokenHash: hashToken(refreshToken),
		TokenType: "refresh",
		ExpiresAt: now.Add(time.Duration(expireHours) * time.Hour),
		CreateAt:  now,
	}
	if err := tokenRepo.Create(&stored); err != nil {
		return "", "", err
	}

	return token, refreshToken, nil
}

// generateToken creates JWT token
func generateToken(user models.User) (string, error) {
	expireHours, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24 // default 24 hours
	}

	claims := middleware.Claims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// generateRefreshToken returns an opaque random token.
func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashToken hashes an opaque token for storage; only the hash hits the
// database.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// HashPassword hashes password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
