package otp

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pquerna/otp"
)

// Generator produces fixed-length numeric codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric draws codes uniformly from [0, 10^digits) and left-pads them with zeros.
type Numeric struct {
	digits otp.Digits
	max    *big.Int
	rand   io.Reader
}

// NewNumeric returns a Numeric generator. A nil reader means crypto/rand.
// Digits other than 6 or 8 fall back to 6.
func NewNumeric(digits otp.Digits, r io.Reader) *Numeric {
	if digits != otp.DigitsSix && digits != otp.DigitsEight {
		digits = otp.DigitsSix
	}

	if r == nil {
		r = rand.Reader
	}

	return &Numeric{
		digits: digits,
		max:    new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits.Length())), nil),
		rand:   r,
	}
}

// Generate returns a new code.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(n.rand, n.max)
	if err != nil {
		return "", err
	}

	return n.digits.Format(int32(v.Int64())), nil
}

// Length is the number of digits in generated codes.
func (n *Numeric) Length() int {
	return n.digits.Length()
}
