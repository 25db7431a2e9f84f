package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// RateLimiterTestSuite defines the test suite for the rate limiter middleware
type RateLimiterTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *RateLimiterTestSuite) SetupTest() {
	s.echo = echo.New()
	// Each test gets a clean visitor map
	mu.Lock()
	visitors = make(map[string]*visitor)
	mu.Unlock()
}

func TestRateLimiterTestSuite(t *testing.T) {
	suite.Run(t, new(RateLimiterTestSuite))
}

func (s *RateLimiterTestSuite) request(ip string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	_ = handler(c)
	return rec
}

func (s *RateLimiterTestSuite) TestAllowsRequestsWithinLimit() {
	handler := RateLimiterWithConfig(100, 100)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 10; i++ {
		rec := s.request("10.0.0.1", handler)
		s.Equal(http.StatusOK, rec.Code)
	}
}

func (s *RateLimiterTestSuite) TestRejectsRequestsOverBurst() {
	handler := RateLimiterWithConfig(1, 2)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	s.Equal(http.StatusOK, s.request("10.0.0.2", handler).Code)
	s.Equal(http.StatusOK, s.request("10.0.0.2", handler).Code)
	s.Equal(http.StatusTooManyRequests, s.request("10.0.0.2", handler).Code)
}

func (s *RateLimiterTestSuite) TestLimitsArePerIP() {
	handler := RateLimiterWithConfig(1, 1)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	s.Equal(http.StatusOK, s.request("10.0.0.3", handler).Code)
	s.Equal(http.StatusTooManyRequests, s.request("10.0.0.3", handler).Code)

	// A different client is unaffected
	s.Equal(http.StatusOK, s.request("10.0.0.4", handler).Code)
}
