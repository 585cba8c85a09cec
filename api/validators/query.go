package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/farmtofork-backend/pkg/errors"
)

// QueryString returns the trimmed query value, or "" when absent.
func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

func RequiredQueryString(r *http.Request, key string) (string, error) {
	value := QueryString(r, key)
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
