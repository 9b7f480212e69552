package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expense-manager/internal/config"
	apierrors "expense-manager/internal/errors"
	"expense-manager/internal/handlers"
	"expense-manager/internal/models"
	"expense-manager/internal/repositories"
	"expense-manager/internal/repositories/repository_mocks"
	"expense-manager/internal/services"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestAuthMiddleware(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

type AuthMiddlewareSuite struct {
	suite.Suite
	ctrl                     *gomock.Controller
	tokenService             services.TokenServiceInterface
	mockBlacklistedTokenRepo *repository_mocks.MockBlacklistedTokenRepositoryInterface
	e                        *echo.Echo
	user                     *models.User
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.tokenService = s.createTokenService(24 * time.Hour)
	s.mockBlacklistedTokenRepo = repository_mocks.NewMockBlacklistedTokenRepositoryInterface(s.ctrl)
	s.e = echo.New()
	s.user = &models.User{ID: uuid.New(), Email: "test@example.com", Name: "Test User"}
}

func (s *AuthMiddlewareSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AuthMiddlewareSuite) createTokenService(duration time.Duration) services.TokenServiceInterface {
	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	return services.NewTokenService(&config.JWTConfig{
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "test-issuer",
		AccessTokenDuration: duration,
	})
}

// serve runs the middleware in front of a handler that records whether it was reached.
func (s *AuthMiddlewareSuite) serve(tokenService services.TokenServiceInterface, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	reached := false
	handler := RequireAuth(tokenService, s.mockBlacklistedTokenRepo)(func(c echo.Context) error {
		reached = true
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	// rejections are written by SendError, so the middleware returns nil
	s.Require().NoError(handler(c))
	return rec, c, reached
}

func (s *AuthMiddlewareSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body apierrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ValidToken() {
	token, _, err := s.tokenService.GenerateAccessToken(s.user)
	s.Require().NoError(err)
	claims, err := s.tokenService.ValidateAccessToken(token)
	s.Require().NoError(err)
	jti := claims.ID

	s.mockBlacklistedTokenRepo.EXPECT().GetByJTI(gomock.Any(), jti).Return(nil, repositories.ErrTokenNotFound)

	rec, c, reached := s.serve(s.tokenService, "Bearer "+token)

	s.True(reached)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(s.user.ID, c.Get(handlers.UserIDContextKey))
	s.Equal(s.user.Email, c.Get("user_email"))
	s.Equal(jti, c.Get("token_jti"))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MissingAuthorizationHeader() {
	rec, _, reached := s.serve(s.tokenService, "")

	s.False(reached)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_002", s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_InvalidHeaderFormat() {
	rec, _, reached := s.serve(s.tokenService, "Token abc")

	s.False(reached)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_MalformedJWT() {
	rec, _, reached := s.serve(s.tokenService, "Bearer invalid.jwt.token")

	s.False(reached)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_ExpiredToken() {
	short := s.createTokenService(time.Millisecond)
	token, _, err := short.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	// token timestamps have second precision
	time.Sleep(1100 * time.Millisecond)

	rec, _, reached := s.serve(short, "Bearer "+token)

	s.False(reached)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_003", s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_TokenSignedWithDifferentKey() {
	token, _, err := s.createTokenService(time.Hour).GenerateAccessToken(s.user)
	s.Require().NoError(err)

	rec, _, reached := s.serve(s.tokenService, "Bearer "+token)

	s.False(reached)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireAuth_RevokedToken() {
	token, expiresAt, err := s.tokenService.GenerateAccessToken(s.user)
	s.Require().NoError(err)
	claims, err := s.tokenService.ValidateAccessToken(token)
	s.Require().NoError(err)
	jti := claims.ID

	s.mockBlacklistedTokenRepo.EXPECT().GetByJTI(gomock.Any(), jti).Return(models.NewBlacklistedToken(jti, s.user.ID, expiresAt), nil)

	rec, _, reached := s.serve(s.tokenService, "Bearer "+token)

	s.False(reached)
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireAuth_BlacklistLookupFails() {
	token, _, err := s.tokenService.GenerateAccessToken(s.user)
	s.Require().NoError(err)

	s.mockBlacklistedTokenRepo.EXPECT().GetByJTI(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	rec, _, reached := s.serve(s.tokenService, "Bearer "+token)

	s.False(reached)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("SYSTEM_001", s.errorCode(rec))
}
