package rooms

import (
	"crypto/rand"
	"math/big"
)

// Alphabet excludes the visually ambiguous letters I and O.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

const codeLength = 4

func GenerateCode() (string, error) {
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code), nil
}
