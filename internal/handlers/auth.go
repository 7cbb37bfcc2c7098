package handlers

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"splitup-be/internal/config"
	"splitup-be/internal/models"
	"splitup-be/internal/service"
	"splitup-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	db       *sql.DB
	notifier service.Notifier
}

func NewAuthHandler(db *sql.DB, notifier service.Notifier) *AuthHandler {
	return &AuthHandler{db: db, notifier: notifier}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if user already exists
	var existingUser models.User
	err := h.db.QueryRow("SELECT id FROM users WHERE email = $1", req.Email).Scan(&existingUser.ID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	userID := uuid.New()
	now := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO users (id, email, password_hash, full_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, userID, req.Email, string(hashedPassword), req.FullName, models.RoleUser, now, now)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Generate JWT token
	token, err := utils.GenerateJWT(userID, req.Email, models.RoleUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	if h.notifier != nil {
		go func(email, name string) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := h.notifier.SendWelcomeEmail(ctx, email, name); err != nil {
				log.Printf("Failed to send welcome email to %s: %v", email, err)
			}
		}(req.Email, req.FullName)
	}

	userResponse := models.UserResponse{
		ID:        userID,
		Email:     req.Email,
		FullName:  req.FullName,
		Role:      models.RoleUser,
		CreatedAt: now,
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    userResponse,
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Portal identity: the configured admin account signs in without a
	// database row and gets the super_admin role.
	appConfig := config.GetConfig()
	if appConfig.Admin.Email != "" && req.Email == appConfig.Admin.Email {
		if req.Password != appConfig.Admin.Password {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		adminID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(appConfig.Admin.Email))
		token, err := utils.GenerateJWT(adminID, req.Email, models.RoleSuperAdmin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user": models.UserResponse{
				ID:       adminID,
				Email:    req.Email,
				FullName: "SplitUp Admin",
				Role:     models.RoleSuperAdmin,
			},
			"token": token,
		})
		return
	}

	// Get user from database
	var user models.User
	err := h.db.QueryRow(`
		SELECT id, email, password_hash, full_name, role, created_at, updated_at
		FROM users WHERE email = $1
	`, req.Email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Role, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Check password
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Generate JWT token
	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	userResponse := models.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userResponse,
		"token":   token,
	})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, email, full_name, role, created_at, updated_at
		FROM users WHERE id = $1
	`, userID).Scan(&user.ID, &user.Email, &user.FullName, &user.Role, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		// The config admin identity has no users row
		email, _ := c.Get("user_email")
		role, _ := c.Get("user_role")
		emailStr, _ := email.(string)
		roleStr, _ := role.(string)
		if roleStr == models.RoleSuperAdmin {
			c.JSON(http.StatusOK, gin.H{
				"user": models.UserResponse{
					ID:       userID.(uuid.UUID),
					Email:    emailStr,
					FullName: "SplitUp Admin",
					Role:     roleStr,
				},
			})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": models.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			FullName:  user.FullName,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		},
	})
}
