package utils

import "github.com/google/uuid"

// GenThreadID returns a fresh identifier for a thread uploaded without one.
func GenThreadID() string {
	return "thread-" + uuid.NewString()
}
