package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/inboxpilot/dashboard-client/internal/common"
	"github.com/inboxpilot/dashboard-client/internal/models"
	"github.com/inboxpilot/dashboard-client/internal/store"
)

// Storage keys. KeyLegacy is the envelope an older release persisted the
// user under; it is read once for migration and never written or deleted.
const (
	KeyUser        = "user"
	KeyUserID      = "user_id"
	KeyAccessToken = "access_token"
	KeyOnboarding  = "onboarding_data"
	KeyLegacy      = "auth-storage"
)

// authKeys are the entries wiped on logout and on corrupt-record recovery.
var authKeys = []string{KeyUser, KeyUserID, KeyAccessToken, KeyOnboarding}

// recordOutcome is the tagged result of resolving the persisted session
// record. Keeping the variants explicit makes every migration path
// testable on its own.
type recordOutcome int

const (
	recordAbsent recordOutcome = iota
	recordFound
	recordMigrated
	recordCorrupt
)

// readCanonicalUser resolves the durable "who is logged in" record:
//
//  1. Read the canonical user and user-id keys.
//  2. If either is missing, fall back to the legacy envelope; a well-formed
//     nested user is rewritten under the canonical keys (one-time
//     migration) and returned.
//  3. A canonical record that fails to parse or lacks id/email is corrupt;
//     the caller must wipe the auth keys.
//
// The bearer token is returned alongside when present.
func readCanonicalUser(ctx context.Context, s store.Store) (models.User, string, recordOutcome) {
	userJSON, errUser := s.Get(ctx, KeyUser)
	_, errID := s.Get(ctx, KeyUserID)

	if errors.Is(errUser, common.ErrNotFound) || errors.Is(errID, common.ErrNotFound) {
		if user, ok := readLegacyEnvelope(ctx, s); ok {
			if err := writeCanonicalUser(ctx, s, user); err != nil {
				return models.User{}, "", recordCorrupt
			}
			return user, readToken(ctx, s), recordMigrated
		}
		return models.User{}, "", recordAbsent
	}

	// Unexpected storage failures are downgraded to the corrupt path: wipe
	// and start over rather than render an inconsistent authenticated view.
	if errUser != nil || errID != nil {
		return models.User{}, "", recordCorrupt
	}

	user, err := decodeUser(userJSON)
	if err != nil {
		return models.User{}, "", recordCorrupt
	}

	return user, readToken(ctx, s), recordFound
}

// decodeUser parses a canonical user document and enforces the fields the
// authenticated view depends on.
func decodeUser(raw string) (models.User, error) {
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", common.ErrCorruptRecord, err)
	}
	if err := user.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", common.ErrCorruptRecord, err)
	}
	return user, nil
}

// legacyEnvelope is the older persisted shape: the user wrapped inside a
// state object.
type legacyEnvelope struct {
	State struct {
		User *models.User `json:"user"`
	} `json:"state"`
}

// readLegacyEnvelope reads and validates the legacy record. Anything less
// than a well-formed nested user reads as "no legacy record".
func readLegacyEnvelope(ctx context.Context, s store.Store) (models.User, bool) {
	raw, err := s.Get(ctx, KeyLegacy)
	if err != nil {
		return models.User{}, false
	}

	var env legacyEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return models.User{}, false
	}
	if env.State.User == nil || env.State.User.Validate() != nil {
		return models.User{}, false
	}
	return *env.State.User, true
}

// writeCanonicalUser persists the user document and the mirrored id key as
// one unit.
func writeCanonicalUser(ctx context.Context, s store.Store, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return s.SetMany(ctx, map[string]string{
		KeyUser:   string(raw),
		KeyUserID: strconv.FormatInt(user.ID, 10),
	})
}

func readToken(ctx context.Context, s store.Store) string {
	token, err := s.Get(ctx, KeyAccessToken)
	if err != nil {
		return ""
	}
	return token
}

// readDraft loads a pending onboarding draft. A draft that no longer
// parses is dropped silently; it is staging data, not a session record.
func readDraft(ctx context.Context, s store.Store) *models.OnboardingData {
	raw, err := s.Get(ctx, KeyOnboarding)
	if err != nil {
		return nil
	}
	var draft models.OnboardingData
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		_ = s.Delete(ctx, KeyOnboarding)
		return nil
	}
	return &draft
}
