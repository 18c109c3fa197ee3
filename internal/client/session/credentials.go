package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/bookreview/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookreview/internal/common"
)

// CredentialStore is the durable home of the bearer credential.
type CredentialStore interface {
	// Load returns the stored credential; ok is false when none is stored.
	Load(ctx context.Context) (token string, ok bool, err error)
	Save(ctx context.Context, token string) error
	Purge(ctx context.Context) error
}

// MetadataCredentials keeps the credential in the metadata key/value table.
type MetadataCredentials struct {
	repo metadata.Repository
	key  string
}

func NewMetadataCredentials(repo metadata.Repository) *MetadataCredentials {
	return &MetadataCredentials{repo: repo, key: common.CredentialKey}
}

func (m *MetadataCredentials) Load(ctx context.Context) (string, bool, error) {
	return m.repo.Get(ctx, m.key)
}

func (m *MetadataCredentials) Save(ctx context.Context, token string) error {
	return m.repo.Set(ctx, m.key, token)
}

func (m *MetadataCredentials) Purge(ctx context.Context) error {
	return m.repo.Delete(ctx, m.key)
}

// MemoryCredentials is a process-local CredentialStore.
type MemoryCredentials struct {
	mu    sync.Mutex
	token string
	ok    bool
}

func (m *MemoryCredentials) Load(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.ok, nil
}

func (m *MemoryCredentials) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.ok = token, true
	return nil
}

func (m *MemoryCredentials) Purge(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.ok = "", false
	return nil
}
