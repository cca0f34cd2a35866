package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Archive_Put(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
		body   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		method = r.Method
		path = r.URL.Path
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	archive, err := NewS3Archive(context.Background(), S3Config{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		AccessKey: "test",
		SecretKey: "test",
		Bucket:    "listas",
		PublicURL: "https://files.example.com/",
	})
	require.NoError(t, err)

	url, err := archive.Put(context.Background(), "pricelists/2024/03/abc/lista.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/pricelists/2024/03/abc/lista.pdf", url)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/listas/pricelists/2024/03/abc/lista.pdf", path)
	assert.Contains(t, string(body), "%PDF-1.4")
}

func TestS3Archive_PutFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	archive, err := NewS3Archive(context.Background(), S3Config{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		AccessKey: "test",
		SecretKey: "test",
		Bucket:    "listas",
	})
	require.NoError(t, err)

	_, err = archive.Put(context.Background(), "k", []byte("x"), "")
	assert.ErrorContains(t, err, "failed to archive k")
}

func TestNewS3Archive_RequiresBucket(t *testing.T) {
	_, err := NewS3Archive(context.Background(), S3Config{})
	assert.Error(t, err)
}

func TestArchiveKey(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "pricelists/2024/03/snap-1/lista-15-03-24.pdf", ArchiveKey(at, "snap-1", "lista-15-03-24.pdf"))
	assert.Equal(t, "pricelists/2024/03/snap-1/lista.pdf", ArchiveKey(at, "snap-1", "C:\\Users\\ventas\\lista.pdf"))
	assert.Equal(t, "pricelists/2024/03/snap-1/pricelist.txt", ArchiveKey(at, "snap-1", ""))
}
