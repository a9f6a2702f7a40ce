package usecase

import (
	"context"
	"strings"
	"time"

	"main/model"
	"main/services"
	"main/utils"
)

// UsersStore is the document-store contract the user service runs on.
// *repository.UserRepo is the Mongo implementation.
type UsersStore interface {
	AddUser(ctx context.Context, user *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUser(ctx context.Context, userID string) (*model.User, error)
	UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error
}

type UserService struct {
	UsersRepo  UsersStore
	Notifier   services.Notifier
	ResetGuard services.ResetTokenGuard
	BaseURL    string // prefix for reset-password links
}

// Register validates and persists a new user. The credential is stored
// as an Argon2id hash, never in a recoverable form.
func (svc *UserService) Register(ctx context.Context, name, email, password, confirmPassword string) (*model.User, error) {
	if password != confirmPassword {
		utils.TrackAuthAttempt("failure", "register")
		return nil, utils.ValidationError("password not match")
	}

	user := &model.User{
		UserID:   utils.GenerateID(),
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
	}
	if err := utils.Validate.Struct(user); err != nil {
		utils.TrackAuthAttempt("failure", "register")
		return nil, utils.ValidationError("%v", err)
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := svc.UsersRepo.AddUser(ctx, user); err != nil {
		utils.TrackAuthAttempt("failure", "register")
		return nil, err
	}

	utils.TrackAuthAttempt("success", "register")
	return user, nil
}

// Login checks the credential and issues a signed access token. Unknown
// email and wrong password are indistinguishable to the caller.
func (svc *UserService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := svc.UsersRepo.FindUserByEmail(ctx, email)
	if err != nil {
		utils.TrackAuthAttempt("failure", "login")
		return "", nil, utils.AuthError("auth failed")
	}

	match, err := services.VerifyPassword(user.Password, password)
	if err != nil || !match {
		utils.TrackAuthAttempt("failure", "login")
		return "", nil, utils.AuthError("auth failed")
	}

	token, err := services.GenerateAccessToken(user.UserID, user.Email)
	if err != nil {
		return "", nil, err
	}

	utils.TrackAuthAttempt("success", "login")
	return token, user, nil
}

// RequestPasswordReset issues a reset token for the account and mails
// it as a link. The result reports the dispatch, not the reset itself.
func (svc *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := svc.UsersRepo.FindUserByEmail(ctx, email)
	if err != nil {
		utils.TrackAuthAttempt("failure", "reset")
		return utils.AuthError("auth failed")
	}

	token, err := services.GenerateResetToken(user.UserID, user.Email)
	if err != nil {
		return err
	}

	link := svc.BaseURL + "/resetPassword/" + token
	if err := svc.Notifier.SendPasswordReset(user.Email, link); err != nil {
		utils.TrackError("mail")
		return utils.TransientError("send reset mail", err)
	}

	return nil
}

// ResetPassword consumes a reset token and overwrites the credential.
//  1. mismatching or weak passwords fail validation
//  2. the token must verify with reset scope
//  3. a token is good for one reset only
//  4. the embedded user must still exist
func (svc *UserService) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) (*model.User, error) {
	if newPassword != confirmPassword {
		return nil, utils.ValidationError("password not match")
	}
	if !utils.ValidatePassword(newPassword) {
		return nil, utils.ValidationError("password too weak")
	}

	claims, err := services.ValidateToken(token, services.ScopeReset)
	if err != nil {
		utils.TrackAuthAttempt("failure", "reset")
		return nil, err
	}

	// Keep the denylist entry alive as long as the token itself.
	ttl := time.Until(claims.ExpiresAt.Time)
	fresh, err := svc.ResetGuard.Consume(ctx, token, ttl)
	if err != nil {
		return nil, utils.TransientError("consume reset token", err)
	}
	if !fresh {
		utils.TrackAuthAttempt("failure", "reset")
		return nil, utils.AuthError("reset token already used")
	}

	user, err := svc.UsersRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		utils.TrackAuthAttempt("failure", "reset")
		return nil, utils.AuthError("user no longer exists")
	}

	hashed, err := services.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	if err := svc.UsersRepo.UpdateUserPassword(ctx, user.UserID, hashed); err != nil {
		return nil, err
	}

	utils.TrackAuthAttempt("success", "reset")
	user.Password = hashed
	return user, nil
}
