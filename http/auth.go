package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"golang.org/x/net/websocket"
)

const (
	// HeaderClientID carries the client-chosen connection identifier.
	HeaderClientID = "X-Skuggi-Client-Id"

	accessTokenQueryKey = "access_token"
)

// GetAccessTokenFromHTTPRequest extracts the access token from the
// Authorization bearer header, falling back to the access_token query
// parameter for clients that cannot set headers on WebSocket dials.
func GetAccessTokenFromHTTPRequest(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return r.URL.Query().Get(accessTokenQueryKey)
}

func verifyAccessToken(accessToken string, r *http.Request) error {
	token := GetAccessTokenFromHTTPRequest(r)
	if subtle.ConstantTimeCompare([]byte(token), []byte(accessToken)) != 1 {
		return errors.New("invalid access token").
			WithType("unauthorized")
	}
	return nil
}

// VerifyAuthToken returns a WebSocket handshake that rejects connections
// without the expected access token. An empty expected token disables the
// check.
func VerifyAuthToken(accessToken string) func(*websocket.Config, *http.Request) error {
	return func(c *websocket.Config, r *http.Request) error {
		if accessToken == "" {
			return nil
		}

		if err := verifyAccessToken(accessToken, r); err != nil {
			logs.WithTag("client_id", r.Header.Get(HeaderClientID)).Error(err)
			return err
		}
		return nil
	}
}

// VerifyAuthTokenHandler guards a plain HTTP handler with the same access
// token check as the WebSocket handshake.
func VerifyAuthTokenHandler(accessToken string, next http.HandlerFunc) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if accessToken != "" {
			if err := verifyAccessToken(accessToken, r); err != nil {
				logs.WithTag("client_id", r.Header.Get(HeaderClientID)).Error(err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
		}

		next.ServeHTTP(w, r)
	}
}
