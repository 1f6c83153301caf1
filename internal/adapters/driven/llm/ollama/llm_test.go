package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
)

func TestNewLLMService_Defaults(t *testing.T) {
	svc := NewLLMService(LLMConfig{})

	assert.Equal(t, DefaultLLMModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
	assert.Equal(t, DefaultLLMTimeout, svc.client.Timeout)
}

func TestGenerate(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(generateResponse{
			Response: "Q: What is a buffer overflow?\nA: A write past the end of a buffer.",
			Done:     true,
		})
	}))
	defer server.Close()

	svc := NewLLMService(LLMConfig{BaseURL: server.URL, Model: "testmodel"})

	result, err := svc.Generate(context.Background(), "describe the content", driven.GenerateOptions{
		Temperature: 0.3,
		TopP:        0.9,
		MaxTokens:   512,
	})
	require.NoError(t, err)

	assert.Equal(t, "Q: What is a buffer overflow?\nA: A write past the end of a buffer.", result)
	assert.Equal(t, "testmodel", got.Model)
	assert.Equal(t, "describe the content", got.Prompt)
	assert.False(t, got.Stream)
	require.NotNil(t, got.Options)
	assert.Equal(t, 0.3, got.Options.Temperature)
	assert.Equal(t, 0.9, got.Options.TopP)
	assert.Equal(t, 512, got.Options.NumPredict)
}

func TestGenerate_NoOptionsWhenUnset(t *testing.T) {
	var raw map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(generateResponse{Response: "ok", Done: true})
	}))
	defer server.Close()

	svc := NewLLMService(LLMConfig{BaseURL: server.URL})

	_, err := svc.Generate(context.Background(), "prompt", driven.GenerateOptions{})
	require.NoError(t, err)

	_, present := raw["options"]
	assert.False(t, present, "zero options should not be sent")
}

func TestGenerate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"out of memory"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewLLMService(LLMConfig{BaseURL: server.URL})

	_, err := svc.Generate(context.Background(), "prompt", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama error (status 500)")
	assert.Contains(t, err.Error(), "out of memory")
}

func TestGenerate_ModelNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model 'missing:7b' not found, try pulling it first"}`, http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewLLMService(LLMConfig{BaseURL: server.URL, Model: "missing:7b"})

	_, err := svc.Generate(context.Background(), "prompt", driven.GenerateOptions{})
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestGenerate_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewLLMService(LLMConfig{BaseURL: server.URL})

	_, err := svc.Generate(context.Background(), "prompt", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"deepseek-r1:32b"},{"name":"llama3.2"}]}`))
	}))
	defer server.Close()

	svc := NewLLMService(LLMConfig{BaseURL: server.URL})

	models, err := svc.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"deepseek-r1:32b", "llama3.2"}, models)
}

func TestListModels_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	svc := NewLLMService(LLMConfig{BaseURL: server.URL})

	models, err := svc.ListModels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	svc := NewLLMService(LLMConfig{BaseURL: server.URL})

	assert.NoError(t, svc.Ping(context.Background()))
}

func TestPing_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewLLMService(LLMConfig{BaseURL: server.URL})

	err := svc.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestPing_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewLLMService(LLMConfig{BaseURL: server.URL})

	err := svc.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping failed")
}

func TestClose(t *testing.T) {
	svc := NewLLMService(LLMConfig{})
	assert.NoError(t, svc.Close())
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.LLMService = NewLLMService(LLMConfig{})
}
