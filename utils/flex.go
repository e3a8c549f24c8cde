package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexFloat accepts both 5 and "5" in JSON; the browser forms send either.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	v, err := parseFlex(b)
	if err != nil {
		return err
	}
	if v == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || !finite(n) {
		return fmt.Errorf("invalid number %q", v)
	}
	*f = FlexFloat(n)
	return nil
}

// finite rejects Inf and NaN, which ParseFloat accepts but JSON cannot encode.
func finite(n float64) bool {
	return !math.IsInf(n, 0) && !math.IsNaN(n)
}

type FlexID uint

func (id *FlexID) UnmarshalJSON(b []byte) error {
	v, err := parseFlex(b)
	if err != nil {
		return err
	}
	if v == "" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", v)
	}
	*id = FlexID(n)
	return nil
}

func parseFlex(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	return string(b), nil
}

// FlexString keeps the text of a JSON string or number; edit forms send
// percentages either way.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	v, err := parseFlex(b)
	if err != nil {
		return err
	}
	*s = FlexString(v)
	return nil
}
