package common

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

// DecodeJSON reads a size-limited JSON body into dst.
// Malformed input comes back as a ValidationError.
func DecodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBody))
	if err := decoder.Decode(dst); err != nil {
		return &domain.ValidationError{
			Field:   "body",
			Message: fmt.Sprintf("invalid request body: %v", err),
		}
	}
	return nil
}

// ParseBool parses query flags such as excludeLatex=true with fallback.
func ParseBool(value string, fallback bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
