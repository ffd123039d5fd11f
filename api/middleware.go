package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationTypeBearer = "Bearer"
)

// Authorizer decides whether a request may use the admin surface. It is the
// single extension point for plugging in a real credential check later;
// nothing else in the system knows how admin access is granted.
type Authorizer interface {
	Authorize(token string) error
}

// StaticTokenAuthorizer compares a bearer token against a fixed secret.
type StaticTokenAuthorizer struct {
	token string
}

func NewStaticTokenAuthorizer(token string) *StaticTokenAuthorizer {
	return &StaticTokenAuthorizer{token: token}
}

func (a *StaticTokenAuthorizer) Authorize(token string) error {
	if token == "" {
		return errors.New("admin token is not provided")
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
		return errors.New("invalid admin token")
	}
	return nil
}

// AllowAllAuthorizer accepts every request. Local development only.
type AllowAllAuthorizer struct{}

func (AllowAllAuthorizer) Authorize(string) error {
	return nil
}

// adminAuthMiddleware guards the admin endpoints with the configured
// authorizer.
func adminAuthMiddleware(authorizer Authorizer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var token string

		authorizationHeader := ctx.GetHeader(authorizationHeaderKey)
		if authorizationHeader != "" {
			fields := strings.Fields(authorizationHeader)
			if len(fields) != 2 || fields[0] != authorizationTypeBearer {
				err := errors.New("invalid authorization header format")
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
				return
			}
			token = fields[1]
		}

		if err := authorizer.Authorize(token); err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
			return
		}

		ctx.Next()
	}
}
