package middlewares

import (
	"fmt"
	"regexp"
	"strings"

	"school-store/internal/domain/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func CorrectEmailChecker(email string) bool {
	return emailPattern.MatchString(email)
}

func CheckLogin(username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyField
	}

	return nil
}

func CheckCreateUser(username, password, firstName, lastName, email, role string) error {
	if username == "" || password == "" || firstName == "" || lastName == "" || role == "" {
		return ErrEmptyField
	}

	if len(username) < 3 {
		return fmt.Errorf("%w: minimum 3 characters required", ErrLoginTooShort)
	}

	if len(password) < 6 {
		return fmt.Errorf("%w: minimum 6 characters required", ErrPasswordTooShort)
	}

	if len(strings.TrimSpace(firstName)) < 2 || len(strings.TrimSpace(lastName)) < 2 {
		return ErrNameTooShort
	}

	if email != "" && !CorrectEmailChecker(email) {
		return ErrInvalidEmail
	}

	if !models.Role(role).Valid() {
		return ErrInvalidRole
	}

	return nil
}

func CheckAward(amount int, reason string) error {
	if amount <= 0 {
		return ErrNonPositive
	}

	if strings.TrimSpace(reason) == "" {
		return ErrEmptyReason
	}

	return nil
}
