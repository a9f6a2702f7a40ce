package utils

import "github.com/google/uuid"

// GenerateID returns a random identifier for users and notes.
func GenerateID() string {
	return uuid.NewString()
}
