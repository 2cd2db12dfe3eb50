package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
	"github.com/comitanigiacomo/habitly/internal/core/services"
)

type stubTokens map[string]string

func (s stubTokens) ValidateToken(token string) (string, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", errors.New("unknown token")
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func protectedRouter(tokens TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(tokens))
	router.GET("/habits", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, "habits of "+userID)
	})
	return router
}

func callWithHeader(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/habits", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	router := protectedRouter(stubTokens{"good-token": "user-42"})

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "Valid token", header: "Bearer good-token", wantCode: http.StatusOK, wantBody: "habits of user-42"},
		{name: "Extra whitespace is tolerated", header: "Bearer   good-token", wantCode: http.StatusOK, wantBody: "habits of user-42"},
		{name: "Missing header", header: "", wantCode: http.StatusUnauthorized, wantBody: "authorization header required"},
		{name: "Scheme only", header: "Bearer", wantCode: http.StatusUnauthorized, wantBody: "invalid authorization header format"},
		{name: "Wrong scheme", header: "Basic Zm9vOmJhcg==", wantCode: http.StatusUnauthorized, wantBody: "invalid authorization header format"},
		{name: "Scheme glued to token", header: "Bearergood-token", wantCode: http.StatusUnauthorized, wantBody: "invalid authorization header format"},
		{name: "Too many parts", header: "Bearer good-token extra", wantCode: http.StatusUnauthorized, wantBody: "invalid authorization header format"},
		{name: "Unknown token", header: "Bearer forged", wantCode: http.StatusUnauthorized, wantBody: "invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := callWithHeader(router, tt.header)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthMiddleware_WithTokenService(t *testing.T) {
	users := new(MockUserRepo)
	tokens := services.NewTokenService("middleware-secret", "habitly-test", time.Hour, users)
	router := protectedRouter(tokens)

	users.On("GetByID", mock.Anything, "user-7").Return(&domain.User{ID: "user-7", Name: "grace"}, nil)
	users.On("GetByID", mock.Anything, "user-gone").Return(nil, domain.ErrUserNotFound)

	t.Run("Issued token is accepted", func(t *testing.T) {
		token, err := tokens.GenerateToken("user-7")
		require.NoError(t, err)

		w := callWithHeader(router, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "habits of user-7", w.Body.String())
	})

	t.Run("Token of a deleted user is rejected", func(t *testing.T) {
		token, err := tokens.GenerateToken("user-gone")
		require.NoError(t, err)

		w := callWithHeader(router, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		expired := services.NewTokenService("middleware-secret", "habitly-test", -time.Minute, users)
		token, err := expired.GenerateToken("user-7")
		require.NoError(t, err)

		w := callWithHeader(router, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid or expired token")
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "  Bearer   abc.def  ", want: "abc.def"},
		{header: "", wantErr: errMissingAuthorization},
		{header: "Bearer ", wantErr: errMalformedBearer},
		{header: "bearer abc.def", wantErr: errMalformedBearer},
		{header: "Bearer abc def", wantErr: errMalformedBearer},
		{header: "Bearer abc\tdef", wantErr: errMalformedBearer},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := bearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthMiddleware_ErrorBody(t *testing.T) {
	w := callWithHeader(protectedRouter(stubTokens{}), "Token abc")

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Error: "invalid authorization header format"}, body)
	assert.NotContains(t, w.Body.String(), "retry_in_s")
}
