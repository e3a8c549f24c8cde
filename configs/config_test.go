package config

import (
	"testing"
	"time"
)

func TestTypedHelpers(t *testing.T) {
	t.Setenv("IM_TEST_INT", "42")
	t.Setenv("IM_TEST_BAD_INT", "forty")
	t.Setenv("IM_TEST_BOOL", "true")
	t.Setenv("IM_TEST_DUR", "90s")
	t.Setenv("IM_TEST_NEG_DUR", "-5m")
	t.Setenv("IM_TEST_BLANK", "   ")

	if got := ConfigInt("IM_TEST_INT", 1); got != 42 {
		t.Errorf("ConfigInt = %d, want 42", got)
	}
	if got := ConfigInt("IM_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("ConfigInt fallback = %d, want 7", got)
	}
	if !ConfigBool("IM_TEST_BOOL", false) {
		t.Error("ConfigBool = false, want true")
	}
	if got := ConfigDuration("IM_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Errorf("ConfigDuration = %v, want 90s", got)
	}
	if got := ConfigDuration("IM_TEST_NEG_DUR", time.Minute); got != time.Minute {
		t.Errorf("negative duration should fall back, got %v", got)
	}
	if got := ConfigDefault("IM_TEST_BLANK", "x"); got != "x" {
		t.Errorf("ConfigDefault = %q, want x", got)
	}
}
