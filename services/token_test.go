package services

import (
	"errors"
	"os"
	"testing"

	"main/utils"
)

func init() {
	os.Setenv("GO_ENV", "test")
	os.Setenv("JWT_SECRET_KEY", "test-secret-key")
	utils.InitJWT()
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tokenString, err := GenerateAccessToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := ValidateToken(tokenString, ScopeAccess)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "alice@example.com")
	}
	if claims.Scope != ScopeAccess {
		t.Errorf("Scope = %q, want %q", claims.Scope, ScopeAccess)
	}
}

func TestTokenScopeEnforcement(t *testing.T) {
	accessToken, err := GenerateAccessToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	resetToken, err := GenerateResetToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}

	if _, err := ValidateToken(resetToken, ScopeReset); err != nil {
		t.Errorf("reset token rejected for reset scope: %v", err)
	}
	if _, err := ValidateToken(resetToken, ScopeAccess); !errors.Is(err, utils.ErrAuth) {
		t.Errorf("reset token accepted for access scope, err = %v", err)
	}
	if _, err := ValidateToken(accessToken, ScopeReset); !errors.Is(err, utils.ErrAuth) {
		t.Errorf("access token accepted for reset scope, err = %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"Empty", ""},
		{"Not A JWT", "definitely-not-a-token"},
		{"Truncated", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateToken(tt.token, ScopeAccess); !errors.Is(err, utils.ErrAuth) {
				t.Errorf("ValidateToken(%q) err = %v, want auth failure", tt.token, err)
			}
		})
	}
}

func TestValidateTokenRejectsTamperedSignature(t *testing.T) {
	tokenString, err := GenerateAccessToken("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	tampered := tokenString[:len(tokenString)-2] + "xx"
	if _, err := ValidateToken(tampered, ScopeAccess); !errors.Is(err, utils.ErrAuth) {
		t.Errorf("tampered token accepted, err = %v", err)
	}
}
