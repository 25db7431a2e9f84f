package handlers

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// getTransactionID parses the :id path parameter
func getTransactionID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

func getClientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.Request().Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.Request().RemoteAddr
}
