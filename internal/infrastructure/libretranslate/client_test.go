package libretranslate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langbot/internal/domain/entities"
)

func TestSupportedPairsFlattensLanguages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/languages", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"code": "en", "name": "English", "targets": ["fr", "ru"]},
			{"code": "fr", "name": "French", "targets": ["en"]}
		]`))
	}))
	defer server.Close()

	pairs, err := New(server.URL).SupportedPairs(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []entities.LanguagePair{
		{Source: "en", Target: "fr"},
		{Source: "en", Target: "ru"},
		{Source: "fr", Target: "en"},
	}, pairs)
}

func TestTranslatePostsForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/translate", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "voiture", r.PostForm.Get("q"))
		assert.Equal(t, "fr", r.PostForm.Get("source"))
		assert.Equal(t, "en", r.PostForm.Get("target"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translatedText": "car"}`))
	}))
	defer server.Close()

	translated, err := New(server.URL).Translate(context.Background(), "voiture", "fr", "en")
	require.NoError(t, err)
	assert.Equal(t, "car", translated)
}

func TestDetectLanguageTruncatesConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/detect", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"language": "fr", "confidence": 92.4},
			{"language": "it", "confidence": 7.6}
		]`))
	}))
	defer server.Close()

	detected, err := New(server.URL).DetectLanguage(context.Background(), "voiture")
	require.NoError(t, err)
	assert.Equal(t, []entities.DetectedLanguage{
		{Language: "fr", Confidence: 92},
		{Language: "it", Confidence: 7},
	}, detected)
}

func TestErrorStatusIncludesBodyExcerpt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "Invalid API key"}`, http.StatusForbidden)
	}))
	defer server.Close()

	_, err := New(server.URL).Translate(context.Background(), "voiture", "fr", "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "Invalid API key")
}
