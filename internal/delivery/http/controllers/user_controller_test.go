package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooladmin/internal/delivery/http/helpers"
	"schooladmin/internal/delivery/http/middleware"
	"schooladmin/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	getByIDUser *domain.User
	getByIDErr  error
	updateErr   error
	lastUpdate  *domain.User
	loginToken  string
	loginUser   *domain.User
	loginErr    error
	resetErr    error
	resetEmail  string
	confirmErr  error
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDUser, nil
}

func (f *fakeUserService) Update(ctx context.Context, user *domain.User) error {
	f.lastUpdate = user
	return f.updateErr
}

func (f *fakeUserService) RequestPasswordReset(ctx context.Context, email string) error {
	f.resetEmail = email
	return f.resetErr
}

func (f *fakeUserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return f.confirmErr
}

func (f *fakeUserService) CreateStaff(ctx context.Context, email, name, password string, admin bool) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUserService) SetPassword(ctx context.Context, email, password string) error {
	return nil
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope
}

// decodeData re-decodes envelope.Data into out.
func decodeData(t *testing.T, envelope helpers.APIResponse, out any) {
	t.Helper()
	b, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, out))
}

func TestUserController_Login(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		fake         *fakeUserService
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			body:       `{"email":"a@b.com","password":"secret123"}`,
			fake:       &fakeUserService{loginToken: "jwt", loginUser: &domain.User{ID: "u1", Email: "a@b.com"}},
			wantStatus: http.StatusOK,
		},
		{
			name:         "missing password",
			body:         `{"email":"a@b.com"}`,
			fake:         &fakeUserService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "unknown field",
			body:         `{"email":"a@b.com","password":"x","role":"admin"}`,
			fake:         &fakeUserService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "invalid credentials",
			body:         `{"email":"a@b.com","password":"wrong"}`,
			fake:         &fakeUserService{loginErr: domain.ErrInvalidCredentials},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "service error",
			body:         `{"email":"a@b.com","password":"x"}`,
			fake:         &fakeUserService{loginErr: assert.AnError},
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewUserController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/auth/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantStatus == http.StatusOK {
				var resp LoginResponse
				decodeData(t, envelope, &resp)
				assert.Equal(t, "jwt", resp.Token)
				assert.Equal(t, "Bearer", resp.TokenType)
				assert.Equal(t, "u1", resp.User.ID)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
		})
	}
}

func TestUserController_PasswordReset(t *testing.T) {
	t.Run("request accepted", func(t *testing.T) {
		fake := &fakeUserService{}
		ctrl := NewUserController(testLogger, fake)
		rr := httptest.NewRecorder()
		ctrl.RequestPasswordReset(rr, httptest.NewRequest(http.MethodPost, "/auth/password-reset", bytes.NewBufferString(`{"email":"a@b.com"}`)))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "a@b.com", fake.resetEmail)
	})

	t.Run("request invalid email", func(t *testing.T) {
		ctrl := NewUserController(testLogger, &fakeUserService{})
		rr := httptest.NewRecorder()
		ctrl.RequestPasswordReset(rr, httptest.NewRequest(http.MethodPost, "/auth/password-reset", bytes.NewBufferString(`{"email":"nope"}`)))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	tests := []struct {
		name       string
		body       string
		confirmErr error
		wantStatus int
	}{
		{"confirm success", `{"email":"a@b.com","code":"123456","password":"newpassword"}`, nil, http.StatusOK},
		{"confirm short password", `{"email":"a@b.com","code":"123456","password":"short"}`, nil, http.StatusBadRequest},
		{"confirm missing code", `{"email":"a@b.com","password":"newpassword"}`, nil, http.StatusBadRequest},
		{"confirm bad code", `{"email":"a@b.com","code":"000000","password":"newpassword"}`, domain.ErrInvalidInput, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewUserController(testLogger, &fakeUserService{confirmErr: tt.confirmErr})
			rr := httptest.NewRecorder()
			ctrl.ConfirmPasswordReset(rr, httptest.NewRequest(http.MethodPost, "/auth/password-reset/confirm", bytes.NewBufferString(tt.body)))
			require.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestUserController_GetMe(t *testing.T) {
	tests := []struct {
		name          string
		contextUserID string
		fakeUser      *domain.User
		fakeErr       error
		wantStatus    int
		wantBodyCode  string
		checkUser     func(t *testing.T, u *domain.User)
	}{
		{
			name:          "success",
			contextUserID: "user-123",
			fakeUser:      &domain.User{ID: "user-123", Email: "a@b.com", Name: "Alice", PasswordHash: "secret", CreatedAt: time.Now(), UpdatedAt: time.Now()},
			wantStatus:    http.StatusOK,
			checkUser: func(t *testing.T, u *domain.User) {
				assert.Equal(t, "user-123", u.ID)
				assert.Equal(t, "a@b.com", u.Email)
				assert.Equal(t, "Alice", u.Name)
				assert.Empty(t, u.PasswordHash)
			},
		},
		{
			name:          "no user in context",
			contextUserID: "",
			wantStatus:    http.StatusUnauthorized,
			wantBodyCode:  helpers.ErrCodeUnauthorized,
		},
		{
			name:          "user not found",
			contextUserID: "user-123",
			fakeErr:       domain.ErrUserNotFound,
			wantStatus:    http.StatusNotFound,
			wantBodyCode:  helpers.ErrCodeNotFound,
		},
		{
			name:          "service error",
			contextUserID: "user-123",
			fakeErr:       assert.AnError,
			wantStatus:    http.StatusInternalServerError,
			wantBodyCode:  helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUserService{getByIDUser: tt.fakeUser, getByIDErr: tt.fakeErr}
			ctrl := NewUserController(testLogger, fake)

			req := httptest.NewRequest(http.MethodGet, "http://test/users/me", nil)
			if tt.contextUserID != "" {
				req = req.WithContext(middleware.SetUserID(req.Context(), tt.contextUserID))
			}
			rr := httptest.NewRecorder()

			ctrl.GetMe(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantStatus == http.StatusOK && tt.checkUser != nil {
				require.Nil(t, envelope.Error)
				var u domain.User
				decodeData(t, envelope, &u)
				tt.checkUser(t, &u)
			}
			if tt.wantBodyCode != "" && tt.wantStatus != http.StatusOK {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestUserController_UpdateMe(t *testing.T) {
	now := time.Now()
	alice := func() *domain.User {
		return &domain.User{ID: "user-123", Email: "a@b.com", Name: "Alice", CreatedAt: now, UpdatedAt: now}
	}

	tests := []struct {
		name           string
		contextUserID  string
		body           string
		fakeUser       *domain.User
		fakeGetErr     error
		fakeUpdateErr  error
		wantStatus     int
		wantBodyCode   string
		wantBodySubstr string
		checkUpdate    func(t *testing.T, u *domain.User)
	}{
		{
			name:          "success update name",
			contextUserID: "user-123",
			body:          `{"name":" Alice Updated "}`,
			fakeUser:      alice(),
			wantStatus:    http.StatusOK,
			checkUpdate: func(t *testing.T, u *domain.User) {
				assert.Equal(t, "Alice Updated", u.Name)
				assert.Equal(t, "a@b.com", u.Email)
			},
		},
		{
			name:          "success update email",
			contextUserID: "user-123",
			body:          `{"email":"New@Example.com"}`,
			fakeUser:      alice(),
			wantStatus:    http.StatusOK,
			checkUpdate: func(t *testing.T, u *domain.User) {
				assert.Equal(t, "new@example.com", u.Email)
			},
		},
		{
			name:          "no user in context",
			contextUserID: "",
			body:          `{"name":"x"}`,
			wantStatus:    http.StatusUnauthorized,
			wantBodyCode:  helpers.ErrCodeUnauthorized,
		},
		{
			name:           "invalid json",
			contextUserID:  "user-123",
			body:           `{invalid`,
			fakeUser:       alice(),
			wantStatus:     http.StatusBadRequest,
			wantBodyCode:   helpers.ErrCodeBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "invalid email format",
			contextUserID:  "user-123",
			body:           `{"email":"not-an-email"}`,
			fakeUser:       alice(),
			wantStatus:     http.StatusBadRequest,
			wantBodyCode:   helpers.ErrCodeBadRequest,
			wantBodySubstr: "email",
		},
		{
			name:          "duplicate email",
			contextUserID: "user-123",
			body:          `{"email":"taken@example.com"}`,
			fakeUser:      alice(),
			fakeUpdateErr: domain.ErrDuplicateEmail,
			wantStatus:    http.StatusConflict,
			wantBodyCode:  helpers.ErrCodeConflict,
		},
		{
			name:          "user not found on get",
			contextUserID: "user-123",
			body:          `{"name":"x"}`,
			fakeGetErr:    domain.ErrUserNotFound,
			wantStatus:    http.StatusNotFound,
			wantBodyCode:  helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeUserService{
				getByIDUser: tt.fakeUser,
				getByIDErr:  tt.fakeGetErr,
				updateErr:   tt.fakeUpdateErr,
			}
			ctrl := NewUserController(testLogger, fake)

			req := httptest.NewRequest(http.MethodPatch, "http://test/users/me", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.contextUserID != "" {
				req = req.WithContext(middleware.SetUserID(req.Context(), tt.contextUserID))
			}
			rr := httptest.NewRecorder()

			ctrl.UpdateMe(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				require.NotNil(t, fake.lastUpdate)
				tt.checkUpdate(t, fake.lastUpdate)
				return
			}
			require.NotNil(t, envelope.Error)
			if tt.wantBodyCode != "" {
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
			if tt.wantBodySubstr != "" {
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}
