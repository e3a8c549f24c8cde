package utils

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/anjiri1684/institute_manager/pkg/apperrors"
)

func TestGenerateOTP(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 20; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if !re.MatchString(code) {
			t.Fatalf("code %q is not six digits", code)
		}
	}
}

func TestUniqueFilename(t *testing.T) {
	a := UniqueFilename("Marksheet.PDF")
	b := UniqueFilename("Marksheet.PDF")
	if a == b {
		t.Fatal("names should differ")
	}
	if !strings.HasSuffix(a, ".pdf") {
		t.Errorf("%q should keep lower-cased extension", a)
	}
}

func TestMaskAndHashAadhaar(t *testing.T) {
	masked := MaskAadhaar("1234 5678 9012")
	if masked == nil || *masked != "XXXX-XXXX-9012" {
		t.Fatalf("masked = %v", masked)
	}
	if MaskAadhaar("12345") != nil {
		t.Error("short numbers should not be masked")
	}
	h1 := HashAadhaar("123456789012", "k")
	h2 := HashAadhaar("1234 5678 9012", "k")
	if h1 == nil || h2 == nil || *h1 != *h2 || len(*h1) != 64 {
		t.Errorf("hash mismatch: %v %v", h1, h2)
	}
	if HashAadhaar("", "k") != nil {
		t.Error("empty aadhaar should hash to nil")
	}
}

func TestFlexFloatAndID(t *testing.T) {
	var payload struct {
		Marks FlexFloat `json:"marks"`
		ID    FlexID    `json:"id"`
	}
	if err := json.Unmarshal([]byte(`{"marks":"2.5","id":"7"}`), &payload); err != nil {
		t.Fatalf("unmarshal strings: %v", err)
	}
	if payload.Marks != 2.5 || payload.ID != 7 {
		t.Errorf("got %+v", payload)
	}
	if err := json.Unmarshal([]byte(`{"marks":3,"id":9}`), &payload); err != nil {
		t.Fatalf("unmarshal numbers: %v", err)
	}
	if payload.Marks != 3 || payload.ID != 9 {
		t.Errorf("got %+v", payload)
	}
	if err := json.Unmarshal([]byte(`{"id":"seven"}`), &payload); err == nil {
		t.Error("expected error for non-numeric id")
	}
	for _, raw := range []string{`"Inf"`, `"+Inf"`, `"-inf"`, `"NaN"`, `"1e400"`} {
		var m struct {
			Marks FlexFloat `json:"marks"`
		}
		if err := json.Unmarshal([]byte(`{"marks":`+raw+`}`), &m); err == nil {
			t.Errorf("marks %s accepted as %v", raw, m.Marks)
		}
	}
	if ParseFloat("Inf") != 0 || ParseOptionalFloat("NaN") != nil {
		t.Error("non-finite form values should be dropped")
	}

	var pct struct {
		Tenth   FlexString `json:"tenth"`
		Twelfth FlexString `json:"twelfth"`
	}
	if err := json.Unmarshal([]byte(`{"tenth":88.5,"twelfth":" 72 "}`), &pct); err != nil {
		t.Fatal(err)
	}
	if pct.Tenth != "88.5" || pct.Twelfth != "72" {
		t.Errorf("got %+v", pct)
	}
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
	}
	err := ValidateStruct(req{Email: "a@x.com"})
	var verr apperrors.ValidationError
	if !apperrors.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	verr = err.(apperrors.ValidationError)
	if verr.Field != "name" {
		t.Errorf("field = %q, want name", verr.Field)
	}
	if err := ValidateStruct(req{Name: "x", Email: "a@x.com"}); err != nil {
		t.Errorf("valid struct: %v", err)
	}
}

func TestParseDate(t *testing.T) {
	if ParseDate("") != nil || ParseDate("not a date") != nil {
		t.Error("blank/malformed should be nil")
	}
	if ParseDate("2024-06-01") == nil {
		t.Error("ISO date should parse")
	}
}
