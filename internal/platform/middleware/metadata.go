package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

// ClientMeta describes the calling client, derived from the User-Agent header.
// Note: used only for access logging and contextual diagnostics, never for
// authorization decisions.
type ClientMeta struct {
	Browser  string
	OS       string
	Platform string
}

func (m ClientMeta) IsZero() bool {
	return m.Browser == "" && m.OS == "" && m.Platform == ""
}

type clientMetaKey struct{}

// GetClientMetadata retrieves parsed client metadata from the context.
func GetClientMetadata(ctx context.Context) ClientMeta {
	if meta, ok := ctx.Value(clientMetaKey{}).(ClientMeta); ok {
		return meta
	}
	return ClientMeta{}
}

// ClientMetadata parses the User-Agent header and stores low-cardinality
// client metadata in the request context for downstream logging.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uaString := r.Header.Get("User-Agent")
		if uaString == "" {
			next.ServeHTTP(w, r)
			return
		}

		ua := useragent.New(uaString)
		browser, _ := ua.Browser()

		platform := "desktop"
		if ua.Mobile() {
			platform = "mobile"
		} else if ua.Bot() {
			platform = "bot"
		}

		meta := ClientMeta{
			Browser:  strings.ToLower(strings.TrimSpace(browser)),
			OS:       strings.ToLower(strings.TrimSpace(ua.OS())),
			Platform: platform,
		}

		ctx := context.WithValue(r.Context(), clientMetaKey{}, meta)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
