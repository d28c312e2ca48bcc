package security

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	custom_error "tracker/pkg/errors"
	"tracker/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockCredentialStore) PersistUser(ctx context.Context, user *models.User) error {
	args := m.Called(user)
	if args.Error(0) == nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func TestRequire(t *testing.T) {
	assert.ErrorIs(t, Require(nil), custom_error.ErrUnauthenticated)
	assert.ErrorIs(t, Require(&Identity{}), custom_error.ErrUnauthenticated)
	assert.NoError(t, Require(&Identity{UserID: uuid.New()}))
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	userID := uuid.New()

	token, err := issuer.GenerateJWT(userID, "anna")
	require.NoError(t, err)

	identity, err := issuer.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "anna", identity.Username)
}

func TestParseJWTRejectsExpiredAndForeignTokens(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := issuer.GenerateJWT(uuid.New(), "anna")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour).ParseJWT(expired)
	assert.Error(t, err)

	foreign, err := NewTokenIssuer("other", time.Hour).GenerateJWT(uuid.New(), "anna")
	require.NoError(t, err)
	_, err = NewTokenIssuer("secret", time.Hour).ParseJWT(foreign)
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := NewTokenIssuer("secret", time.Hour)
	userID := uuid.New()
	token, err := issuer.GenerateJWT(userID, "anna")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/me", JWTMiddleware(issuer), func(c *gin.Context) {
		identity := IdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.UserID.String()})
	})

	tests := []struct {
		name           string
		target         string
		header         string
		expectedStatus int
	}{
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"garbage token", "/me", "Bearer nope", http.StatusUnauthorized},
		{"valid header", "/me", "Bearer " + token, http.StatusOK},
		{"valid query token", "/me?token=" + token, "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
			}
		})
	}
}

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Username: "anna", PasswordHash: string(hash)}

	tests := []struct {
		name           string
		payload        map[string]string
		setupMock      func(m *MockCredentialStore)
		expectedStatus int
	}{
		{
			name:    "valid credentials",
			payload: map[string]string{"username": "anna", "password": "password123"},
			setupMock: func(m *MockCredentialStore) {
				m.On("GetUserByUsername", "anna").Return(user, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "wrong password",
			payload: map[string]string{"username": "anna", "password": "nope"},
			setupMock: func(m *MockCredentialStore) {
				m.On("GetUserByUsername", "anna").Return(user, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:    "unknown user",
			payload: map[string]string{"username": "ghost", "password": "password123"},
			setupMock: func(m *MockCredentialStore) {
				m.On("GetUserByUsername", "ghost").Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			payload:        map[string]string{"username": "anna"},
			setupMock:      func(m *MockCredentialStore) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockCredentialStore)
			tt.setupMock(store)
			handler := NewLoginHandler(store, NewTokenIssuer("secret", time.Hour), zap.NewNop())

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest(http.MethodPost, "/auth", bytes.NewBuffer(body))

			handler.Login(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			store.AssertExpectations(t)
		})
	}
}

func TestRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		payload        models.CreateUserRequest
		persistErr     error
		expectPersist  bool
		expectedStatus int
	}{
		{
			name:           "created",
			payload:        models.CreateUserRequest{Username: "anna", Password: "password123", Fullname: "Anna K"},
			expectPersist:  true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "username taken",
			payload:        models.CreateUserRequest{Username: "anna", Password: "password123"},
			persistErr:     custom_error.WrapDBError("users_username_key", "23505"),
			expectPersist:  true,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "storage failure",
			payload:        models.CreateUserRequest{Username: "anna", Password: "password123"},
			persistErr:     errors.New("db down"),
			expectPersist:  true,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "short password",
			payload:        models.CreateUserRequest{Username: "anna", Password: "abc"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockCredentialStore)
			if tt.expectPersist {
				store.On("PersistUser", mock.MatchedBy(func(u *models.User) bool {
					return u.Username == tt.payload.Username &&
						bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(tt.payload.Password)) == nil
				})).Return(tt.persistErr)
			}
			handler := NewLoginHandler(store, NewTokenIssuer("secret", time.Hour), zap.NewNop())

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			body, _ := json.Marshal(tt.payload)
			c.Request = httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))

			handler.Register(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			store.AssertExpectations(t)
		})
	}
}
