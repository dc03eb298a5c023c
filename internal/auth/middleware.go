package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"bookameal/internal/errors"
)

// TokenHeader is the request header carrying the bearer token.
const TokenHeader = "x-access-token"

const missingTokenMessage = "kindly provide a valid token in the request header"
const notAdminMessage = "you are not authorized to perform this function as a non-admin user"

// TokenRequired rejects requests without a valid token in the x-access-token
// header. A missing token and a bad token get the same message so probing
// clients learn nothing about why they were refused.
func TokenRequired(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + TokenHeader,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: missingTokenMessage,
				Code:  "INVALID_TOKEN",
			})
		},
	})
}

// AdminRequired rejects authenticated requests whose token does not carry the
// admin flag. Must be composed after TokenRequired.
func AdminRequired(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: missingTokenMessage,
				Code:  "INVALID_TOKEN",
			})
		}
		if !claims.Admin {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: notAdminMessage,
				Code:  "NOT_ADMIN",
			})
		}
		return next(c)
	}
}

// ClaimsFrom extracts the decoded token claims stored by TokenRequired.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	return claims, ok
}
