package handler

import (
	"strings"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RegistrationHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	user, err := userService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, dto.ToUserResponse(user))
}

func LoginHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	token, user, err := userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{
		"message": "login successful",
		"token":   token,
		"user":    dto.ToUserResponse(user),
	})
}

func ForgotPasswordHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	if err := userService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "email has been sent"})
}

func ResetPasswordHandler(c *gin.Context, userService *usecase.UserService) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	// The reset token travels as a bearer credential.
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.Unauthorized(c, "missing reset token")
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	user, err := userService.ResetPassword(c.Request.Context(), token, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{
		"message": "password has been changed",
		"user":    dto.ToUserResponse(user),
	})
}
