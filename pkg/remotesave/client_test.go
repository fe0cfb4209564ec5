package remotesave

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kirana_stock/internal/models"
)

var items = []models.Item{
	{ID: 1, ItemName: "Rice", Supplier: "Acme", TargetStock: 10, CurrentStock: 2, VendorCycle: models.Weekly, NextOrderDay: models.Monday},
}

func TestSaveInventory_PostsCatalog(t *testing.T) {
	var got []models.Item
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/save-inventory", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"saved":1,"message":"ok"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "s3cret", time.Second)
	resp, err := client.SaveInventory(context.Background(), items)

	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.Equal(t, &SaveResponse{Success: true, Saved: 1, Message: "ok"}, resp)
}

func TestSaveInventory_AnyOKStatusIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, "", time.Second).SaveInventory(context.Background(), nil)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Zero(t, resp.Saved)
}

func TestSaveInventory_PlainTextReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("stored\n"))
	}))
	defer srv.Close()

	items := []models.Item{{ID: 1, ItemName: "Rice", Supplier: "Acme", VendorCycle: models.Weekly, NextOrderDay: models.Monday}}
	resp, err := NewClient(srv.URL, "", time.Second).SaveInventory(context.Background(), items)

	require.NoError(t, err)
	assert.Equal(t, &SaveResponse{Success: true, Saved: 1, Message: "stored"}, resp)
}

func TestSaveInventory_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).SaveInventory(context.Background(), items)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestSaveInventory_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "", time.Second).SaveInventory(context.Background(), items)

	assert.ErrorContains(t, err, "failed to send request")
}
