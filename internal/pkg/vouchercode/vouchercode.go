// Package vouchercode generates the bearer codes handed to applicants once
// a purchase is approved.
package vouchercode

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Alphabet omits 0/O/1/I/L to keep codes unambiguous when read aloud or
// typed from a printout.
const Alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

const DefaultLength = 10

var ErrInvalidLength = errors.New("voucher code length must be positive")

type Generator struct {
	length int
}

func NewGenerator(length int) (*Generator, error) {
	if length <= 0 {
		return nil, ErrInvalidLength
	}
	return &Generator{length: length}, nil
}

// Generate returns a fresh random code. Uniqueness is enforced by the
// database's unique index; callers retry on collision.
func (g *Generator) Generate() (string, error) {
	max := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, g.length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf), nil
}

func (g *Generator) Length() int {
	return g.length
}
