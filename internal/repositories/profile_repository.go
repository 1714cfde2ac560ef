// internal/repositories/profile_repository.go
package repositories

import (
	"context"
	"fmt"

	"zuna/internal/database"
	"zuna/internal/models"

	"github.com/gofrs/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// profileRepository implements ProfileRepository
type profileRepository struct {
	*BaseRepository
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *database.Manager, logger *zap.Logger) ProfileRepository {
	return &profileRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// GetByUserID retrieves a user's profile. Users the auth gateway knows
// but who never finished onboarding may have no row yet; that is nil,
// not an error.
func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT user_id, display_name, avatar_url, locale,
		       push_tokens, onboarding_done,
		       created_at, updated_at
		FROM profiles
		WHERE user_id = $1`

	var profile models.Profile
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID, &profile.DisplayName, &profile.AvatarURL, &profile.Locale,
		pq.Array(&profile.PushTokens), &profile.OnboardingDone,
		&profile.CreatedAt, &profile.UpdatedAt,
	)

	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// CountChildProfiles counts the children registered under a parent
func (r *profileRepository) CountChildProfiles(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM child_profiles WHERE user_id = $1`

	var count int
	if err := r.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count child profiles: %w", err)
	}

	return count, nil
}

// IsProfileComplete reports whether onboarding produced a usable
// profile: the onboarding flag plus a display name and at least one
// child profile.
func (r *profileRepository) IsProfileComplete(ctx context.Context, userID uuid.UUID) (bool, error) {
	query := `
		SELECT p.onboarding_done
		       AND p.display_name IS NOT NULL
		       AND EXISTS (SELECT 1 FROM child_profiles c WHERE c.user_id = p.user_id)
		FROM profiles p
		WHERE p.user_id = $1`

	var complete bool
	err := r.QueryRowContext(ctx, query, userID).Scan(&complete)
	if err != nil {
		if r.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check profile completeness: %w", err)
	}

	return complete, nil
}

// GetPushTokens returns the user's registered push tokens. Missing
// profiles return an empty list.
func (r *profileRepository) GetPushTokens(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `SELECT push_tokens FROM profiles WHERE user_id = $1`

	var tokens []string
	err := r.QueryRowContext(ctx, query, userID).Scan(pq.Array(&tokens))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get push tokens: %w", err)
	}

	return tokens, nil
}
