package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const otpLength = 6
const digitBytes = "0123456789"

// GenerateOTP returns a numeric code of otpLength digits from crypto/rand.
func GenerateOTP() (string, error) {
	b := make([]byte, otpLength)
	max := big.NewInt(int64(len(digitBytes)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = digitBytes[n.Int64()]
	}
	return string(b), nil
}

// UniqueFilename keeps the original extension and prefixes a timestamp so
// uploads sort by arrival.
func UniqueFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if len(ext) > 10 {
		ext = ""
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:12], ext)
}
