package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// roomCodeAlphabet avoids easily-confused characters (0/O, 1/I/L).
const roomCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// RoomCodeLength is the number of characters in a generated room code.
const RoomCodeLength = 6

// NewSessionID returns a durable, opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// NewConnID returns a best-effort unique connection identifier.
func NewConnID() string {
	const size = 12

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}

	// Fallback to timestamp if crypto/rand is unavailable.
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

// NewRoomCode returns a short human-typeable room code. Uniqueness is the
// caller's responsibility (collision-check against live rooms).
func NewRoomCode() string {
	buf := make([]byte, RoomCodeLength)
	if _, err := rand.Read(buf); err != nil {
		// Extremely unlikely; fall back to a time-derived code.
		n := time.Now().UnixNano()
		for i := range buf {
			buf[i] = byte(n >> (i * 8))
		}
	}
	for i, b := range buf {
		buf[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
	}
	return string(buf)
}
