package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"clipvault/internal/presentation"
)

// Auth requires a valid Bearer token and stores its subject as the request's
// user id.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			userID, err := identityFromHeader(ctx.Request().Header.Get(presentation.AuthKey), secret)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}

			ctx.Set(presentation.KeyUserID, userID)

			return next(ctx)
		}
	}
}

// OptionalAuth extracts an identity when a token is present but lets
// anonymous requests through. A malformed or forged token is still rejected
// rather than downgraded to anonymous.
func OptionalAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(presentation.AuthKey)
			if header == "" {
				return next(ctx)
			}

			userID, err := identityFromHeader(header, secret)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}

			ctx.Set(presentation.KeyUserID, userID)

			return next(ctx)
		}
	}
}

func identityFromHeader(header string, secret []byte) (string, error) {
	if header == "" {
		return "", errors.New("missing Authorization header")
	}
	raw, found := strings.CutPrefix(header, presentation.BearerPrefix)
	if !found {
		return "", errors.New("missing Bearer prefix")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}

		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("token has no subject")
	}

	return subject, nil
}
