package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Napageneral/cae/internal/model"
)

func TestHTTPClassifier_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req classifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(classifyResponse{
			Label:      "positive",
			Confidence: 0.9,
			Emotions:   map[string]float64{"joy": 0.9},
		})
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "", 0)
	res, err := c.Classify(context.Background(), "great news!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Label != model.SentimentPositive {
		t.Fatalf("expected positive, got %s", res.Label)
	}
	if res.Confidence != 0.9 {
		t.Fatalf("expected confidence 0.9, got %f", res.Confidence)
	}
}

func TestHTTPClassifier_UnavailableWithoutEndpoint(t *testing.T) {
	c := NewHTTPClassifier("", "", 0)
	_, err := c.Classify(context.Background(), "hi")
	if err != ErrUnavailable {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestHTTPClassifier_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad input"}`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, "", 0)
	_, err := c.Classify(context.Background(), "hi")
	if err == nil {
		t.Fatalf("expected an error for a 400 response")
	}
}

func TestHTTPClassifier_ContextCancellation(t *testing.T) {
	c := NewHTTPClassifier("http://127.0.0.1:0/nope", "", 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Classify(ctx, "hi")
	if err == nil {
		t.Fatalf("expected an error for a cancelled context")
	}
}
