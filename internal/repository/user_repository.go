package repository

import (
	"context"
	"slices"
	"strings"
	"sync"

	"homebite/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userRepository implements UserRepository in memory.
type userRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]UserRecord
	byEmail map[string]uuid.UUID
	logger  zerolog.Logger
}

// NewUserRepository creates an empty in-memory account repository.
func NewUserRepository(logger zerolog.Logger) UserRepository {
	return &userRepository{
		byID:    make(map[uuid.UUID]UserRecord),
		byEmail: make(map[string]uuid.UUID),
		logger:  logger.With().Str("repository", "user").Logger(),
	}
}

// Create stores a new account.
func (r *userRepository) Create(ctx context.Context, rec *UserRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := normaliseEmail(rec.User.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[key]; taken {
		r.logger.Debug().Str("email", key).Msg("email already registered")
		return model.ErrEmailRegistered
	}
	if rec.User.ID == uuid.Nil {
		rec.User.ID = uuid.New()
	}

	r.byID[rec.User.ID] = cloneUser(*rec)
	r.byEmail[key] = rec.User.ID
	return nil
}

// GetByEmail retrieves an account by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normaliseEmail(email)]
	if !ok {
		return nil, nil
	}
	rec := cloneUser(r.byID[id])
	return &rec, nil
}

// GetByID retrieves an account by its ID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	rec = cloneUser(rec)
	return &rec, nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneUser(rec UserRecord) UserRecord {
	rec.PasswordHash = slices.Clone(rec.PasswordHash)
	return rec
}
