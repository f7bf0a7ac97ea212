package service

import (
	"crypto/rand"
	"math/big"
)

const randomAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Lengths of the random identifiers minted by the brokers.
const (
	stateLength        = 16
	sessionIDLength    = 16
	updateSecretLength = 8
	deejayCodeLength   = 5
)

// randomString generates a random alphanumeric string of length n.
func randomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(randomAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand failure is unrecoverable
		}
		b[i] = randomAlphabet[idx.Int64()]
	}

	return string(b)
}
