package storage

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	financeapp "github.com/abdelhalimemara/debrah-exp-v5.8/internal/application/finance"
)

var _ financeapp.AttachmentStorage = (*MemoryStorage)(nil)

// MemoryStorage keeps attachments in process memory. Used when object
// storage is disabled, e.g. local sqlite runs and tests.
type MemoryStorage struct {
	// BaseURL prefixes generated download links
	BaseURL string

	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryStorage creates an empty MemoryStorage
func NewMemoryStorage(baseURL string) *MemoryStorage {
	if baseURL == "" {
		baseURL = "http://localhost:8080/files"
	}
	return &MemoryStorage{BaseURL: baseURL, objects: make(map[string]memoryObject)}
}

// Upload stores a copy of data
func (m *MemoryStorage) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

// GenerateDownloadURL returns a link carrying its expiry
func (m *MemoryStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	return m.BaseURL + "/" + url.PathEscape(key) + "?expires=" + url.QueryEscape(expiresAt.UTC().Format(time.RFC3339)), expiresAt, nil
}

// DeleteObject forgets key
func (m *MemoryStorage) DeleteObject(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Object returns a stored object
func (m *MemoryStorage) Object(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj.data, obj.contentType, ok
}

// ServeHTTP serves the object named by the request path. Mount it behind
// http.StripPrefix so the path is the bare key.
func (m *MemoryStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if raw := r.URL.Query().Get("expires"); raw != "" {
		if expiresAt, err := time.Parse(time.RFC3339, raw); err == nil && time.Now().After(expiresAt) {
			http.Error(w, "link expired", http.StatusGone)
			return
		}
	}
	data, contentType, ok := m.Object(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if r.Method == http.MethodGet {
		_, _ = w.Write(data)
	}
}
