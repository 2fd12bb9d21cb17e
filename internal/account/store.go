// File: internal/account/store.go
package account

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/common"
	"github.com/mohdalimj86-del/yalla.ge/internal/config"
	"github.com/mohdalimj86-del/yalla.ge/internal/platform/crypto"
	"github.com/mohdalimj86-del/yalla.ge/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const verificationTokenBytes = 32

// Store owns the current authenticated identity and the durable directory of
// registered accounts. It is an explicitly constructed service with injected
// storage, not a process-wide singleton.
type Store struct {
	mu     sync.Mutex
	scopes *storage.Scopes
	cfg    *config.Config
	logger *zap.Logger

	current *Account
	isNew   bool // one-shot flag consumed by the welcome flow
}

// NewStore creates the account store and restores the current identity from
// the session scope. A corrupt session record is discarded, not fatal.
func NewStore(scopes *storage.Scopes, cfg *config.Config, logger *zap.Logger) *Store {
	s := &Store{
		scopes: scopes,
		cfg:    cfg,
		logger: logger,
	}
	s.restoreSession(context.Background())
	return s
}

func (s *Store) restoreSession(ctx context.Context) {
	var acct Account
	ok, err := storage.ReadJSON(ctx, s.scopes.Session, storage.KeySessionUser, &acct)
	if err != nil {
		s.logger.Warn("Discarding unreadable session identity", zap.Error(err))
		if rmErr := s.scopes.Session.Remove(ctx, storage.KeySessionUser); rmErr != nil {
			s.logger.Error("Failed to remove corrupt session record", zap.Error(rmErr))
		}
		return
	}
	if ok {
		s.current = &acct
	}
}

// Current returns the authenticated account, or nil when no identity is
// current.
func (s *Store) Current() *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.clone()
}

// IsNew reports the one-shot new-identity flag.
func (s *Store) IsNew() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isNew
}

// ClearNewFlag resets the one-shot new-identity flag with no other side
// effects.
func (s *Store) ClearNewFlag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isNew = false
}

// Register creates a new email/password account. It fails with
// ErrDuplicateEmail when the email already exists in the directory
// (case-sensitive exact match, like the original client). The simulated
// network latency makes this a suspending operation; cancel via ctx.
func (s *Store) Register(ctx context.Context, name, email, password string) (*Account, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	directory := s.loadDirectory(ctx)
	for i := range directory {
		if directory[i].Email == email {
			return nil, common.ErrDuplicateEmail
		}
	}

	hash, err := common.HashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not create the account.")
	}

	token, err := crypto.GenerateSecureRandomString(verificationTokenBytes)
	if err != nil {
		s.logger.Error("Failed to generate verification token", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not create the account.")
	}
	expires := time.Now().Add(s.cfg.VerificationTokenTTL)

	acct := Account{
		ID:                       uuid.NewString(),
		Name:                     name,
		Email:                    email,
		Verified:                 false,
		VerificationToken:        &token,
		VerificationTokenExpires: &expires,
		Badges:                   []Badge{BadgeNewUser},
	}

	directory = append(directory, DirectoryEntry{Account: acct, PasswordHash: hash})
	if err := s.saveDirectory(ctx, directory); err != nil {
		return nil, err
	}

	s.setCurrentLocked(ctx, &acct, true)
	s.logger.Info("Account registered", zap.String("accountID", acct.ID))
	return acct.clone(), nil
}

// LoginWithEmail authenticates against the directory. Both an unknown email
// and a wrong password fail with ErrInvalidCredentials; the caller cannot
// distinguish them.
func (s *Store) LoginWithEmail(ctx context.Context, email, password string) (*Account, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	directory := s.loadDirectory(ctx)
	for i := range directory {
		entry := &directory[i]
		if entry.Email != email {
			continue
		}
		if entry.PasswordHash == "" || !common.CheckPasswordHash(password, entry.PasswordHash) {
			s.logger.Warn("Invalid password attempt", zap.String("accountID", entry.ID))
			return nil, common.ErrInvalidCredentials
		}
		acct := entry.Account
		s.setCurrentLocked(ctx, &acct, false)
		s.logger.Info("Account logged in", zap.String("accountID", acct.ID))
		return acct.clone(), nil
	}
	return nil, common.ErrInvalidCredentials
}

// LoginWithExternalIdentity logs in with a normalized profile from an
// identity provider. An unknown email synthesizes a new verified account with
// the "New User" badge and no password; a known email logs in as existing.
func (s *Store) LoginWithExternalIdentity(ctx context.Context, profile ExternalProfile) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	directory := s.loadDirectory(ctx)
	for i := range directory {
		if directory[i].Email == profile.Email {
			acct := directory[i].Account
			s.setCurrentLocked(ctx, &acct, false)
			s.logger.Info("External identity matched existing account", zap.String("accountID", acct.ID))
			return acct.clone(), nil
		}
	}

	id := profile.ID
	if id == "" {
		id = uuid.NewString()
	}
	acct := Account{
		ID:       id,
		Name:     profile.Name,
		Email:    profile.Email,
		Verified: true,
		Badges:   []Badge{BadgeNewUser},
	}
	if profile.Picture != "" {
		pic := profile.Picture
		acct.Picture = &pic
	}

	directory = append(directory, DirectoryEntry{Account: acct})
	if err := s.saveDirectory(ctx, directory); err != nil {
		return nil, err
	}

	s.setCurrentLocked(ctx, &acct, true)
	s.logger.Info("Account created from external identity", zap.String("accountID", acct.ID))
	return acct.clone(), nil
}

// Logout clears the current identity and session record. The directory is
// untouched.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.isNew = false
	if err := s.scopes.Session.Remove(ctx, storage.KeySessionUser); err != nil {
		s.logger.Error("Failed to clear session record", zap.Error(err))
	}
}

// UpdateCurrent merges the given fields into the current identity and
// persists both the session snapshot and the matching directory entry.
// Returns nil with no error when no identity is current.
func (s *Store) UpdateCurrent(ctx context.Context, update ProfileUpdate) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, nil
	}

	if update.Name != nil {
		s.current.Name = *update.Name
	}
	if update.Picture != nil {
		s.current.Picture = update.Picture
	}
	if update.AvatarURL != nil {
		s.current.AvatarURL = update.AvatarURL
	}

	if err := s.persistCurrentLocked(ctx); err != nil {
		return nil, err
	}
	return s.current.clone(), nil
}

// IncrementReviewCount bumps the current identity's review count by one.
// No-op when no identity is current.
func (s *Store) IncrementReviewCount(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	s.current.ReviewCount++
	if err := s.persistCurrentLocked(ctx); err != nil {
		s.logger.Error("Failed to persist review count", zap.Error(err))
	}
}

// VerifyEmail completes the email-verification flow for the current
// identity: the token must match the stored one and be unexpired. On success
// the token fields are cleared and the account is marked verified.
func (s *Store) VerifyEmail(ctx context.Context, token string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, common.ErrUnauthorized
	}
	if s.current.VerificationToken == nil || token == "" || token != *s.current.VerificationToken {
		return nil, common.ErrTokenInvalid
	}
	if s.current.VerificationTokenExpires != nil && time.Now().After(*s.current.VerificationTokenExpires) {
		return nil, common.ErrTokenExpired
	}

	s.current.Verified = true
	s.current.VerificationToken = nil
	s.current.VerificationTokenExpires = nil

	if err := s.persistCurrentLocked(ctx); err != nil {
		return nil, err
	}
	s.logger.Info("Email verified", zap.String("accountID", s.current.ID))
	return s.current.clone(), nil
}

// SweepExpiredTokens clears verification tokens past their expiry from the
// directory and reports how many entries were touched. Run by the cron job.
func (s *Store) SweepExpiredTokens(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	directory := s.loadDirectory(ctx)
	now := time.Now()
	swept := 0
	for i := range directory {
		entry := &directory[i]
		if entry.VerificationToken != nil && entry.VerificationTokenExpires != nil && now.After(*entry.VerificationTokenExpires) {
			entry.VerificationToken = nil
			entry.VerificationTokenExpires = nil
			swept++
		}
	}
	if swept == 0 {
		return 0, nil
	}
	if err := s.saveDirectory(ctx, directory); err != nil {
		return 0, err
	}
	return swept, nil
}

// DirectorySize reports the number of registered accounts.
func (s *Store) DirectorySize(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loadDirectory(ctx))
}

// --- internals ---

// simulateLatency stands in for network round-trip time. A zero configured
// latency disables it, which tests rely on.
func (s *Store) simulateLatency(ctx context.Context) error {
	if s.cfg.AuthSimulatedLatency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.cfg.AuthSimulatedLatency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// loadDirectory reads the registered-accounts directory. Read or decode
// failures degrade to an empty directory; they are logged, never surfaced.
func (s *Store) loadDirectory(ctx context.Context) []DirectoryEntry {
	var directory []DirectoryEntry
	ok, err := storage.ReadJSON(ctx, s.scopes.Durable, storage.KeyUsersDB, &directory)
	if err != nil {
		if errors.Is(err, storage.ErrCorruptRecord) {
			s.logger.Warn("Account directory is corrupt, starting empty", zap.Error(err))
		} else {
			s.logger.Error("Failed to read account directory", zap.Error(err))
		}
		return nil
	}
	if !ok {
		return nil
	}
	return directory
}

func (s *Store) saveDirectory(ctx context.Context, directory []DirectoryEntry) error {
	if err := storage.WriteJSON(ctx, s.scopes.Durable, storage.KeyUsersDB, directory); err != nil {
		s.logger.Error("Failed to persist account directory", zap.Error(err))
		return common.ErrInternalServer.WithDetails("Could not persist the account directory.")
	}
	return nil
}

// setCurrentLocked installs acct as the current identity and writes the
// session snapshot. The snapshot never includes the password hash.
func (s *Store) setCurrentLocked(ctx context.Context, acct *Account, isNew bool) {
	s.current = acct.clone()
	if isNew {
		s.isNew = true
	}
	if err := storage.WriteJSON(ctx, s.scopes.Session, storage.KeySessionUser, s.current); err != nil {
		s.logger.Error("Failed to persist session identity", zap.Error(err))
	}
}

// persistCurrentLocked writes the current identity to the session scope and
// to its directory entry, matched by id.
func (s *Store) persistCurrentLocked(ctx context.Context) error {
	if err := storage.WriteJSON(ctx, s.scopes.Session, storage.KeySessionUser, s.current); err != nil {
		s.logger.Error("Failed to persist session identity", zap.Error(err))
		return common.ErrInternalServer.WithDetails("Could not persist the profile.")
	}

	directory := s.loadDirectory(ctx)
	for i := range directory {
		if directory[i].ID == s.current.ID {
			hash := directory[i].PasswordHash
			directory[i].Account = *s.current.clone()
			directory[i].PasswordHash = hash
			return s.saveDirectory(ctx, directory)
		}
	}
	// Not in the directory (e.g. pre-migration session record); session-only
	// update is still a success.
	return nil
}
