package users

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// User is an account identified by a verified phone number.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand contains the data required to create a user.
type CreateCommand struct {
	Name   string `json:"name" validate:"required,max=100"`
	Phone  string `json:"phone" validate:"required,e164"`
	Avatar string `json:"avatar" validate:"max=8"`
}

// UpdateCommand contains the mutable profile fields.
type UpdateCommand struct {
	Name   string `json:"name" validate:"required,max=100"`
	Avatar string `json:"avatar" validate:"max=8"`
}

// Initials derives an avatar monogram from up to two words of name.
func Initials(name string) string {
	letters := make([]rune, 0, 2)
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		letters = append(letters, unicode.ToUpper(r))
		if len(letters) == 2 {
			break
		}
	}
	return string(letters)
}
