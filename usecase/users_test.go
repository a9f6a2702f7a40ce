package usecase

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"main/model"
	"main/utils"
)

func init() {
	os.Setenv("GO_ENV", "test")
	utils.InitValidator()
	utils.InitJWT()
}

// fakeUsersStore is an in-memory UsersStore with a unique-email
// constraint matching the Mongo index.
type fakeUsersStore struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

func newFakeUsersStore() *fakeUsersStore {
	return &fakeUsersStore{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (s *fakeUsersStore) AddUser(ctx context.Context, user *model.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return utils.ConflictError("email")
	}
	user.CreatedAt = time.Now()
	dup := *user
	s.byID[user.UserID] = &dup
	s.byEmail[user.Email] = &dup
	return nil
}

func (s *fakeUsersStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, utils.NotFoundError("user")
	}
	dup := *user
	return &dup, nil
}

func (s *fakeUsersStore) FindUser(ctx context.Context, userID string) (*model.User, error) {
	user, ok := s.byID[userID]
	if !ok {
		return nil, utils.NotFoundError("user")
	}
	dup := *user
	return &dup, nil
}

func (s *fakeUsersStore) UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error {
	user, ok := s.byID[userID]
	if !ok {
		return utils.NotFoundError("user")
	}
	user.Password = hashedPassword
	user.LastPasswordChange = time.Now()
	return nil
}

// fakeNotifier records the last reset link instead of sending mail.
type fakeNotifier struct {
	to   string
	link string
	fail bool
}

func (n *fakeNotifier) SendPasswordReset(to, link string) error {
	if n.fail {
		return errors.New("smtp down")
	}
	n.to = to
	n.link = link
	return nil
}

// fakeResetGuard is an in-memory single-use token guard.
type fakeResetGuard struct {
	consumed map[string]bool
}

func (g *fakeResetGuard) Consume(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	if g.consumed == nil {
		g.consumed = make(map[string]bool)
	}
	if g.consumed[token] {
		return false, nil
	}
	g.consumed[token] = true
	return true, nil
}

func newUserService() (*UserService, *fakeUsersStore, *fakeNotifier) {
	store := newFakeUsersStore()
	notifier := &fakeNotifier{}
	svc := &UserService{
		UsersRepo:  store,
		Notifier:   notifier,
		ResetGuard: &fakeResetGuard{},
		BaseURL:    "http://localhost:8080",
	}
	return svc, store, notifier
}

const goodPassword = "p4ss!word1"

func TestRegister(t *testing.T) {
	svc, _, _ := newUserService()

	user, err := svc.Register(context.Background(), "Alice", "a@x.com", goodPassword, goodPassword)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.UserID == "" || user.Email != "a@x.com" {
		t.Errorf("Register() returned user %+v", user)
	}
	if user.Password == goodPassword {
		t.Error("Register() stored the raw password")
	}
	if !strings.Contains(user.Password, "$") {
		t.Errorf("Register() credential %q is not a salt$hash pair", user.Password)
	}

	t.Run("Duplicate Email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "Bob", "a@x.com", goodPassword, goodPassword)
		if !errors.Is(err, utils.ErrConflict) {
			t.Errorf("Register() duplicate error = %v, want conflict kind", err)
		}
	})
}

func TestRegisterValidation(t *testing.T) {
	svc, store, _ := newUserService()

	tests := []struct {
		name            string
		userName        string
		email           string
		password        string
		confirmPassword string
	}{
		{"Password Mismatch", "Alice", "a@x.com", goodPassword, "other!1"},
		{"Bad Email", "Alice", "not-an-email", goodPassword, goodPassword},
		{"Weak Password", "Alice", "a@x.com", "short", "short"},
		{"Empty Name", "", "a@x.com", goodPassword, goodPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password, tt.confirmPassword)
			if !errors.Is(err, utils.ErrValidation) {
				t.Errorf("Register() error = %v, want validation kind", err)
			}
		})
	}

	if len(store.byID) != 0 {
		t.Errorf("store holds %d users, failed registrations must not persist", len(store.byID))
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newUserService()

	if _, err := svc.Register(context.Background(), "Alice", "a@x.com", goodPassword, goodPassword); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("Correct Credentials", func(t *testing.T) {
		token, user, err := svc.Login(context.Background(), "a@x.com", goodPassword)
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if token == "" {
			t.Error("Login() returned empty token")
		}
		if user.Email != "a@x.com" {
			t.Errorf("Login() user = %+v", user)
		}
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "a@x.com", "wrong!1")
		if !errors.Is(err, utils.ErrAuth) {
			t.Errorf("Login() error = %v, want auth kind", err)
		}
	})

	t.Run("Unknown Email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@x.com", goodPassword)
		if !errors.Is(err, utils.ErrAuth) {
			t.Errorf("Login() error = %v, want auth kind", err)
		}
	})
}

func resetTokenFromLink(t *testing.T, link string) string {
	t.Helper()
	idx := strings.LastIndex(link, "/")
	if idx < 0 || idx == len(link)-1 {
		t.Fatalf("malformed reset link %q", link)
	}
	return link[idx+1:]
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, notifier := newUserService()

	if _, err := svc.Register(context.Background(), "Alice", "a@x.com", goodPassword, goodPassword); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.RequestPasswordReset(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("RequestPasswordReset() error = %v", err)
	}
	if notifier.to != "a@x.com" {
		t.Errorf("reset mail went to %q", notifier.to)
	}
	token := resetTokenFromLink(t, notifier.link)

	const newPassword = "n3w!pass"
	if _, err := svc.ResetPassword(context.Background(), token, newPassword, newPassword); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	// Old credential is dead, new one works.
	if _, _, err := svc.Login(context.Background(), "a@x.com", goodPassword); !errors.Is(err, utils.ErrAuth) {
		t.Errorf("Login() with old password error = %v, want auth kind", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", newPassword); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}

	t.Run("Token Replay Rejected", func(t *testing.T) {
		_, err := svc.ResetPassword(context.Background(), token, "an0ther!", "an0ther!")
		if !errors.Is(err, utils.ErrAuth) {
			t.Errorf("ResetPassword() replay error = %v, want auth kind", err)
		}
	})
}

func TestResetPasswordMismatchNeverMutates(t *testing.T) {
	svc, store, notifier := newUserService()

	if _, err := svc.Register(context.Background(), "Alice", "a@x.com", goodPassword, goodPassword); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	before := store.byEmail["a@x.com"].Password

	if err := svc.RequestPasswordReset(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("RequestPasswordReset() error = %v", err)
	}
	token := resetTokenFromLink(t, notifier.link)

	_, err := svc.ResetPassword(context.Background(), token, "n3w!pass", "different!1")
	if !errors.Is(err, utils.ErrValidation) {
		t.Errorf("ResetPassword() error = %v, want validation kind", err)
	}

	if store.byEmail["a@x.com"].Password != before {
		t.Error("ResetPassword() with mismatching confirmation mutated the credential")
	}

	// The failed attempt must not burn the token either.
	if _, err := svc.ResetPassword(context.Background(), token, "n3w!pass", "n3w!pass"); err != nil {
		t.Errorf("ResetPassword() after failed attempt error = %v", err)
	}
}

func TestResetPasswordBadToken(t *testing.T) {
	svc, _, _ := newUserService()

	_, err := svc.ResetPassword(context.Background(), "garbage", "n3w!pass", "n3w!pass")
	if !errors.Is(err, utils.ErrAuth) {
		t.Errorf("ResetPassword() error = %v, want auth kind", err)
	}
}

func TestRequestPasswordReset(t *testing.T) {
	svc, _, notifier := newUserService()

	if _, err := svc.Register(context.Background(), "Alice", "a@x.com", goodPassword, goodPassword); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	t.Run("Unknown Email", func(t *testing.T) {
		err := svc.RequestPasswordReset(context.Background(), "nobody@x.com")
		if !errors.Is(err, utils.ErrAuth) {
			t.Errorf("RequestPasswordReset() error = %v, want auth kind", err)
		}
	})

	t.Run("Mail Failure Reported", func(t *testing.T) {
		notifier.fail = true
		defer func() { notifier.fail = false }()

		err := svc.RequestPasswordReset(context.Background(), "a@x.com")
		if !errors.Is(err, utils.ErrTransient) {
			t.Errorf("RequestPasswordReset() error = %v, want transient kind", err)
		}
	})
}
