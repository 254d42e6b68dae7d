package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unbox-app/unbox/internal/common"
	"github.com/unbox-app/unbox/internal/models"
)

func TestGetCard_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cards/card-1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.GreetingCard{ID: "card-1", SenderName: "Alice"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	card, err := c.GetCard(context.Background(), "card-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.SenderName != "Alice" {
		t.Fatalf("unexpected card: %+v", card)
	}
}

func TestGetCard_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"card not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetCard(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGetCard_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).GetCard(context.Background(), "card-1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Healthz(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
