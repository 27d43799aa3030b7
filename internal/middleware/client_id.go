package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const ClientIDHeader = "X-Client-Id"

type contextKey string

const clientIDContextKey contextKey = "clientId"

// ClientID resolves the browser tab a request belongs to. Websocket clients
// cannot set headers, so the clientId query parameter is accepted as well. A
// fresh id is minted when neither is present and echoed in the response.
func ClientID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := strings.TrimSpace(r.Header.Get(ClientIDHeader))
			if clientID == "" {
				clientID = strings.TrimSpace(r.URL.Query().Get("clientId"))
			}
			if clientID == "" {
				clientID = uuid.NewString()
			}
			w.Header().Set(ClientIDHeader, clientID)
			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), clientID)))
		})
	}
}

func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDContextKey, clientID)
}

func GetClientID(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(clientIDContextKey).(string)
	return value, ok && value != ""
}
