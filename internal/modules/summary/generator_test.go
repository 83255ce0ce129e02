package summary

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/irbrowse/core/internal/config"
	"github.com/irbrowse/core/internal/pkg/apperr"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "test-model",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

// llmConfigFor points an LLMConfig at a local test server.
func llmConfigFor(t *testing.T, srv *httptest.Server, timeoutSeconds int) config.LLMConfig {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatal(err)
	}
	return config.LLMConfig{
		Host:           host,
		Port:           port,
		Model:          "test-model",
		APIKey:         "test-key",
		PromptTemplate: "Summarize:\n\n" + config.PromptPlaceholder,
		TimeoutSeconds: timeoutSeconds,
	}
}

func TestGenerateInterpolatesPrompt(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse("  a fine summary  "))
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(llmConfigFor(t, srv, 10))
	s, err := gen.Generate(context.Background(), "the document body")
	if err != nil {
		t.Fatal(err)
	}
	if s != "a fine summary" {
		t.Fatalf("summary = %q, want trimmed text", s)
	}

	if got.Model != "test-model" {
		t.Errorf("model = %q", got.Model)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" {
		t.Fatalf("messages = %+v", got.Messages)
	}
	prompt := got.Messages[0].Content
	if !strings.Contains(prompt, "the document body") {
		t.Errorf("prompt %q missing document text", prompt)
	}
	if strings.Contains(prompt, config.PromptPlaceholder) {
		t.Errorf("placeholder left in prompt %q", prompt)
	}
}

func TestGenerateEmptyCompletionIsUnavailable(t *testing.T) {
	cases := []struct {
		name string
		body interface{}
	}{
		{"no choices", map[string]interface{}{"choices": []interface{}{}}},
		{"blank content", chatResponse("   ")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tc.body)
			}))
			defer srv.Close()

			gen := NewOpenAIGenerator(llmConfigFor(t, srv, 10))
			_, err := gen.Generate(context.Background(), "doc")
			if !apperr.Is(err, apperr.KindGeneratorUnavailable) {
				t.Fatalf("err = %v, want generator unavailable", err)
			}
		})
	}
}

func TestGenerateServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	gen := NewOpenAIGenerator(llmConfigFor(t, srv, 10))
	_, err := gen.Generate(context.Background(), "doc")
	if !apperr.Is(err, apperr.KindGeneratorUnavailable) {
		t.Fatalf("err = %v, want generator unavailable", err)
	}
}

func TestGenerateConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	cfg := llmConfigFor(t, srv, 10)
	srv.Close()

	gen := NewOpenAIGenerator(cfg)
	_, err := gen.Generate(context.Background(), "doc")
	if !apperr.Is(err, apperr.KindGeneratorUnavailable) {
		t.Fatalf("err = %v, want generator unavailable", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	gen := NewOpenAIGenerator(llmConfigFor(t, srv, 1))
	start := time.Now()
	_, err := gen.Generate(context.Background(), "doc")
	if !apperr.Is(err, apperr.KindGeneratorTimeout) {
		t.Fatalf("err = %v, want generator timeout", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("deadline not enforced, took %v", elapsed)
	}
}
