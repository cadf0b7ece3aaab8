package account

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// newVerificationCode draws a 6-digit code uniformly from [100000, 999999].
func newVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
