package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestInt64EnvOrDefaultAcceptsNegative(t *testing.T) {
	t.Setenv("INT64_TEST", "-1001234567890")
	if got := int64EnvOrDefault("INT64_TEST", 0); got != -1001234567890 {
		t.Fatalf("expected negative chat id, got %d", got)
	}
	t.Setenv("INT64_TEST", "abc")
	if got := int64EnvOrDefault("INT64_TEST", 7); got != 7 {
		t.Fatalf("expected default on invalid value, got %d", got)
	}
}

func TestRawEnvOrDefaultKeepsExplicitEmpty(t *testing.T) {
	t.Setenv("RAW_TEST", "")
	if got := rawEnvOrDefault("RAW_TEST", "0 5 * * *"); got != "" {
		t.Fatalf("expected explicit empty value, got %q", got)
	}
	if got := rawEnvOrDefault("RAW_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback for unset key, got %q", got)
	}
}
