package user

import (
	"strings"
	"unicode"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

const AdminID = "admin"

type User struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password,omitempty"`
	Role            Role   `json:"role"`
	Department      string `json:"department,omitempty"`
	Year            string `json:"year,omitempty"`
	RollNumber      string `json:"rollNumber,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Skills          string `json:"skills,omitempty"`
	Bio             string `json:"bio,omitempty"`
	CGPA            string `json:"cgpa,omitempty"`
	ProfileComplete bool   `json:"profileComplete"`
}

// IDFromEmail derives a student id: every rune that is not an ASCII letter
// or digit becomes '_'.
func IDFromEmail(email string) string {
	var b strings.Builder
	for _, r := range email {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// Sanitized returns a copy without the password.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
