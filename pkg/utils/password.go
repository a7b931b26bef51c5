// Package utils holds small helpers shared across binaries.
package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword produces the bcrypt hash stored in config for the admin
// operator account.
func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
