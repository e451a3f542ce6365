// mock_storage.go - Mock storage implementation for testing
package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/schema-scout/backend/internal/models"
)

// MockStorage implements storage.Store for testing. Content is held in
// memory but also written to a temp dir so GetFilePath works.
type MockStorage struct {
	mu       sync.RWMutex
	dir      string
	files    map[string]*models.FileInfo
	fileData map[string][]byte
	nextID   int

	SaveErr error // when set, Save fails with this error
}

// NewMockStorage creates a mock store writing content under dir.
func NewMockStorage(dir string) *MockStorage {
	return &MockStorage{
		dir:      dir,
		files:    make(map[string]*models.FileInfo),
		fileData: make(map[string][]byte),
	}
}

func (m *MockStorage) Save(name string, r io.Reader) (*models.FileInfo, error) {
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := fmt.Sprintf("mock-%d", m.nextID)

	if m.dir != "" {
		if err := os.WriteFile(filepath.Join(m.dir, id), data, 0644); err != nil {
			return nil, err
		}
	}

	digest := sha256.Sum256(data)
	info := &models.FileInfo{
		ID:         id,
		Name:       name,
		Size:       int64(len(data)),
		Digest:     hex.EncodeToString(digest[:]),
		UploadedAt: time.Now(),
		Status:     "uploaded",
	}
	m.files[id] = info
	m.fileData[id] = data

	return info, nil
}

func (m *MockStorage) Get(id string) (*models.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.files[id]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", id)
	}
	return info, nil
}

func (m *MockStorage) List(limit int) ([]*models.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var list []*models.FileInfo
	for _, info := range m.files {
		list = append(list, info)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].UploadedAt.After(list[j].UploadedAt)
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MockStorage) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[id]; !ok {
		return fmt.Errorf("file not found: %s", id)
	}
	delete(m.files, id)
	delete(m.fileData, id)
	return nil
}

func (m *MockStorage) GetFilePath(id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.files[id]; !ok {
		return "", fmt.Errorf("file not found: %s", id)
	}
	return filepath.Join(m.dir, id), nil
}

func (m *MockStorage) SetStatus(id string, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if info, ok := m.files[id]; ok {
		info.Status = status
	}
}

// Data returns the stored content for a file id.
func (m *MockStorage) Data(id string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fileData[id]
}
