package validation

import (
	"strings"

	"noteful-api/internal/apperrors"
)

const (
	usernameMinLen = 1
	passwordMinLen = 8
	passwordMaxLen = 72 // bcrypt input limit
)

// ValidateCredentials enforces the registration shape rules in a
// fixed order; the first violated rule determines the reported error.
// Username and password arrive dynamically typed so a wrong JSON type
// is reported against the exact field. Returns the verified strings.
func ValidateCredentials(username, password any) (string, string, error) {
	fields := []struct {
		name  string
		value any
	}{
		{"username", username},
		{"password", password},
	}

	for _, f := range fields {
		if f.value == nil {
			return "", "", apperrors.MissingCredential(f.name)
		}
	}

	strValues := make(map[string]string, len(fields))
	for _, f := range fields {
		s, ok := f.value.(string)
		if !ok {
			return "", "", apperrors.TypeMismatch(f.name)
		}
		strValues[f.name] = s
	}

	for _, f := range fields {
		s := strValues[f.name]
		if s != strings.TrimSpace(s) {
			return "", "", apperrors.Whitespace(f.name)
		}
	}

	user, pass := strValues["username"], strValues["password"]
	if len(user) < usernameMinLen {
		return "", "", apperrors.TooShort("username", usernameMinLen)
	}
	if len(pass) < passwordMinLen {
		return "", "", apperrors.TooShort("password", passwordMinLen)
	}
	if len(pass) > passwordMaxLen {
		return "", "", apperrors.TooLong("password", passwordMaxLen)
	}

	return user, pass, nil
}
