package utils

import "github.com/google/uuid"

// NewID returns a collision-resistant identifier. Used for connection ids
// and message ids; wall-clock derived ids collide under bursty sends.
func NewID() string {
	return uuid.NewString()
}
