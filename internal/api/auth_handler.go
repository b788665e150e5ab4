package api

import (
	"net/http"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/gin-gonic/gin"
)

type authHandler struct {
	auth AuthService
}

type registerRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Phone     *string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

const resetMailSent = "If the email exists, a reset link has been sent"

func (h *authHandler) register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	session, err := h.auth.Register(c.Request.Context(), domain.Registration{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    session.User,
		"token":   session.Token,
	})
}

func (h *authHandler) login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    session.User,
		"token":   session.Token,
	})
}

func (h *authHandler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": resetMailSent})
}

func (h *authHandler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func (h *authHandler) me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), principal(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *authHandler) updateProfile(c *gin.Context) {
	var patch domain.ProfilePatch
	if err := bindJSON(c, &patch); err != nil {
		fail(c, err)
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), principal(c).UserID, patch)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

func (h *authHandler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	err := h.auth.ChangePassword(c.Request.Context(), principal(c).UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
