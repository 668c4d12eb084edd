package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/vetcard/internal/infra/kv"
)

const ProfileKey = "vetcard_user_profile"

type UserProfile struct {
	OwnerName string    `json:"owner_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileStore remembers the owner's contact details between bookings.
type ProfileStore struct {
	kv     KV
	key    string
	now    func() time.Time
	logger *slog.Logger
}

func NewProfileStore(backend KV, key string, logger *slog.Logger) *ProfileStore {
	if key == "" {
		key = ProfileKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileStore{
		kv:     backend,
		key:    key,
		now:    time.Now,
		logger: logger.With("module", "profile_store"),
	}
}

func (p *ProfileStore) Get(ctx context.Context) (UserProfile, bool) {
	raw, err := p.kv.Get(ctx, p.key)
	if errors.Is(err, kv.ErrNotFound) {
		return UserProfile{}, false
	}
	if err != nil {
		p.logger.Error("storage.profile.read_failed", "err", err)
		return UserProfile{}, false
	}

	var profile UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		p.logger.Error("storage.profile.decode_failed", "err", err)
		return UserProfile{}, false
	}
	return profile, true
}

func (p *ProfileStore) Save(ctx context.Context, ownerName, phone, email string) UserProfile {
	profile := UserProfile{
		OwnerName: ownerName,
		Phone:     phone,
		Email:     email,
		UpdatedAt: p.now().UTC(),
	}

	b, err := json.Marshal(profile)
	if err == nil {
		err = p.kv.Set(ctx, p.key, b)
	}
	if err != nil {
		p.logger.Error("storage.profile.save_failed", "err", err)
	}
	return profile
}

func (p *ProfileStore) Clear(ctx context.Context) {
	if err := p.kv.Delete(ctx, p.key); err != nil {
		p.logger.Error("storage.profile.clear_failed", "err", err)
	}
}
