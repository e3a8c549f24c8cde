package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// MaskAadhaar keeps the last four digits of a 12 digit number.
func MaskAadhaar(aadhaar string) *string {
	a := strings.ReplaceAll(strings.TrimSpace(aadhaar), " ", "")
	if len(a) != 12 {
		return nil
	}
	masked := "XXXX-XXXX-" + a[8:]
	return &masked
}

func HashAadhaar(aadhaar, key string) *string {
	a := strings.ReplaceAll(strings.TrimSpace(aadhaar), " ", "")
	if a == "" {
		return nil
	}
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(a))
	sum := hex.EncodeToString(mac.Sum(nil))
	return &sum
}
