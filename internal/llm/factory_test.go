package llm

import "testing"

func TestNew(t *testing.T) {
	cases := []struct {
		provider string
		wantName string
	}{
		{"openai", "openai"},
		{"OpenAI", "openai"},
		{"anthropic", "anthropic"},
		{"claude", "anthropic"},
		{"ollama", "ollama"},
	}
	for _, tc := range cases {
		client, err := New(Config{Provider: tc.provider, APIKey: "test-key"})
		if err != nil {
			t.Errorf("New(%q) failed: %v", tc.provider, err)
			continue
		}
		if client.Name() != tc.wantName {
			t.Errorf("New(%q).Name() = %q, want %q", tc.provider, client.Name(), tc.wantName)
		}
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New(Config{Provider: "bard"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNew_MissingKey(t *testing.T) {
	for _, provider := range []string{"openai", "anthropic"} {
		if _, err := New(Config{Provider: provider}); err == nil {
			t.Errorf("New(%q) without API key should fail", provider)
		}
	}
}
