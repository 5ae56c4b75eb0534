package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// InviteCodeLength matches the six upper-case base-36 characters users
	// type when signing up.
	InviteCodeLength = 6
)

// GenerateInviteCode returns a random upper-case base-36 code. Collisions are
// not probed for here; the unique index on invitations.code is the backstop.
func GenerateInviteCode() string {
	buf := make([]byte, InviteCodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf)
}
