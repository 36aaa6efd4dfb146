package prefstore

import (
	"context"

	"github.com/valkey-io/valkey-go"

	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/dashboard"
)

// ValkeyStore persists dashboard preference blobs in a Valkey-compatible
// database so history and theme survive restarts.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "prefs"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	cmd := s.client.B().Get().Key(s.key(key)).Build()
	value, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key, value string) error {
	cmd := s.client.B().Set().Key(s.key(key)).Value(value).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(key string) string {
	return s.prefix + ":" + key
}

var _ dashboard.PrefStore = (*ValkeyStore)(nil)
