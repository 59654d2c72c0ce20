package redact

import (
	"os"
	"testing"
)

func TestString_RedactsKnownEnvVars(t *testing.T) {
	const secret = "zai-TESTSECRETVALUE1234567890" //nolint:gosec // fake test credential
	t.Setenv("ZAI_API_KEY", secret)
	resetCache()

	input := "error: auth failed with key zai-TESTSECRETVALUE1234567890 for request"
	got := String(input)

	if got == input {
		t.Error("expected secret to be redacted, but string was unchanged")
	}
	if expected := "error: auth failed with key [REDACTED] for request"; got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestString_NoSecretSetIsNoop(t *testing.T) {
	os.Unsetenv("ZAI_API_KEY") //nolint:errcheck // test cleanup
	resetCache()

	input := "some normal error message"
	got := String(input)

	if got != input {
		t.Errorf("expected no change, got %q", got)
	}
}

func TestString_ShortValuesIgnored(t *testing.T) {
	// Values under 4 chars could cause false-positive redaction.
	t.Setenv("ZAI_API_KEY", "abc")
	resetCache()

	input := "abc is in the string abc"
	got := String(input)

	if got != input {
		t.Errorf("expected no redaction for short values, got %q", got)
	}
}

func TestString_MultipleSecrets(t *testing.T) {
	t.Setenv("ZAI_API_KEY", "test-token-aaaa")
	t.Setenv("ANTHROPIC_AUTH_TOKEN", "test-token-bbbb")
	resetCache()

	input := "tokens: test-token-aaaa and test-token-bbbb"
	got := String(input)

	expected := "tokens: [REDACTED] and [REDACTED]"
	if got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestSecret_RedactsExplicitValue(t *testing.T) {
	os.Unsetenv("ZAI_API_KEY") //nolint:errcheck // test cleanup
	resetCache()

	got := Secret("key is flag-supplied-key here", "flag-supplied-key")
	if expected := "key is [REDACTED] here"; got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestSecret_ShortExplicitValueIgnored(t *testing.T) {
	os.Unsetenv("ZAI_API_KEY") //nolint:errcheck // test cleanup
	resetCache()

	input := "ab appears twice: ab"
	if got := Secret(input, "ab"); got != input {
		t.Errorf("expected no redaction, got %q", got)
	}
}
