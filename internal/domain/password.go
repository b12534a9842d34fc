package domain

import (
	"fmt"
	"strings"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are rejected up front.
const maxPasswordBytes = 72

// ValidateRegistration checks the presence of required registration fields and that the
// two password entries match. Field names in messages follow the request JSON.
// Usernames may not contain '@' so a login identifier never matches both a username
// and somebody else's email.
func ValidateRegistration(username, email, password, confirmPassword string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is required", ErrValidation)
	case strings.Contains(username, "@"):
		return fmt.Errorf("%w: username must not contain '@'", ErrValidation)
	case email == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case password == "":
		return fmt.Errorf("%w: password is required", ErrValidation)
	case confirmPassword == "":
		return fmt.Errorf("%w: confirm_password is required", ErrValidation)
	case password != confirmPassword:
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	case len(password) > maxPasswordBytes:
		return fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, maxPasswordBytes)
	}
	return nil
}
