package storage

import (
	"context"
	"sync"

	"github.com/xaenox/guardian-bot/internal/models"
)

// MemoryStore is an in-memory ConfigStore used for tests and local runs
// without a database. State does not survive restarts.
type MemoryStore struct {
	mu       sync.RWMutex
	policies map[int64]models.GuildPolicy
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		policies: make(map[int64]models.GuildPolicy),
	}
}

func (s *MemoryStore) GetConfig(ctx context.Context, guildID int64) (models.GuildPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if policy, exists := s.policies[guildID]; exists {
		return clonePolicy(policy), nil
	}
	return models.GuildPolicy{GuildID: guildID}, nil
}

func (s *MemoryStore) SetConfig(ctx context.Context, guildID int64, modRoleID, modChannelID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	policy := s.policies[guildID]
	policy.GuildID = guildID
	if modRoleID != nil {
		v := *modRoleID
		policy.ModRoleID = &v
	}
	if modChannelID != nil {
		v := *modChannelID
		policy.ModChannelID = &v
	}
	s.policies[guildID] = policy
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// clonePolicy copies the pointer fields so callers can never mutate
// stored state through a returned policy.
func clonePolicy(policy models.GuildPolicy) models.GuildPolicy {
	out := models.GuildPolicy{GuildID: policy.GuildID}
	if policy.ModRoleID != nil {
		v := *policy.ModRoleID
		out.ModRoleID = &v
	}
	if policy.ModChannelID != nil {
		v := *policy.ModChannelID
		out.ModChannelID = &v
	}
	return out
}
