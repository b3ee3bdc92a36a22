package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fleet-management/internal/model"
	"github.com/iliyamo/fleet-management/internal/utils"
)

// fakeUserStore implements UserStore on a map keyed by phone.
type fakeUserStore struct {
	byPhone map[string]*model.User
	nextID  uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byPhone: make(map[string]*model.User), nextID: 1}
}

func (s *fakeUserStore) add(t *testing.T, phone, password string) *model.User {
	t.Helper()
	hash, err := utils.HashPassword(password, 4) // low cost keeps tests fast
	require.NoError(t, err)
	u := &model.User{ID: s.nextID, Phone: phone, PasswordHash: hash, Role: model.RoleDriver, IsActive: true}
	s.nextID++
	s.byPhone[phone] = u
	return u
}

func (s *fakeUserStore) GetByPhone(_ context.Context, phone string) (model.User, error) {
	if u, ok := s.byPhone[phone]; ok {
		return *u, nil
	}
	return model.User{}, sql.ErrNoRows
}

func (s *fakeUserStore) UpdatePasswordHash(_ context.Context, userID uint64, hash string) error {
	for _, u := range s.byPhone {
		if u.ID == userID {
			u.PasswordHash = hash
			return nil
		}
	}
	return sql.ErrNoRows
}

// fakeOTPStore implements OTPStore with the same replace-then-match
// semantics as the SQL ledger.
type fakeOTPStore struct {
	rows   map[uint64][]model.PasswordResetOTP
	nextID uint64
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{rows: make(map[uint64][]model.PasswordResetOTP), nextID: 1}
}

func (s *fakeOTPStore) Replace(_ context.Context, userID uint64, code string) (uint64, error) {
	id := s.nextID
	s.nextID++
	s.rows[userID] = []model.PasswordResetOTP{{ID: id, UserID: userID, Code: code, CreatedAt: time.Now().UTC()}}
	return id, nil
}

func (s *fakeOTPStore) FindActive(_ context.Context, userID uint64, code string, ttl time.Duration) (model.PasswordResetOTP, error) {
	cutoff := time.Now().UTC().Add(-ttl)
	for _, o := range s.rows[userID] {
		if o.Code == code && !o.CreatedAt.Before(cutoff) {
			return o, nil
		}
	}
	return model.PasswordResetOTP{}, sql.ErrNoRows
}

func (s *fakeOTPStore) MarkVerified(_ context.Context, id uint64) error {
	for userID, rows := range s.rows {
		for i := range rows {
			if rows[i].ID == id {
				s.rows[userID][i].IsVerified = true
				return nil
			}
		}
	}
	return sql.ErrNoRows
}

func (s *fakeOTPStore) DeleteAllForUser(_ context.Context, userID uint64) error {
	delete(s.rows, userID)
	return nil
}

func (s *fakeOTPStore) count(userID uint64) int { return len(s.rows[userID]) }

func (s *fakeOTPStore) current(userID uint64) string {
	rows := s.rows[userID]
	if len(rows) == 0 {
		return ""
	}
	return rows[len(rows)-1].Code
}

// fakeRevoker records RevokeAllForUser calls.
type fakeRevoker struct {
	revoked []uint64
	fail    bool
}

func (r *fakeRevoker) RevokeAllForUser(_ context.Context, userID uint64) error {
	if r.fail {
		return errors.New("revoke failed")
	}
	r.revoked = append(r.revoked, userID)
	return nil
}

// fakeDelivery records delivered codes and can be made to fail.
type fakeDelivery struct {
	sent []string
	fail bool
}

func (d *fakeDelivery) Deliver(_ context.Context, _, code string) error {
	if d.fail {
		return errors.New("sms gateway down")
	}
	d.sent = append(d.sent, code)
	return nil
}

type flowFixture struct {
	flow     *Flow
	users    *fakeUserStore
	otps     *fakeOTPStore
	revoker  *fakeRevoker
	delivery *fakeDelivery
	intents  *MemoryIntentStore
}

func newFlowFixture() *flowFixture {
	f := &flowFixture{
		users:    newFakeUserStore(),
		otps:     newFakeOTPStore(),
		revoker:  &fakeRevoker{},
		delivery: &fakeDelivery{},
		intents:  NewMemoryIntentStore(),
	}
	f.flow = NewFlow(f.users, f.otps, f.revoker, f.intents, f.delivery, 4, 10*time.Minute, 10*time.Minute)
	return f
}

func TestAuthenticate(t *testing.T) {
	f := newFlowFixture()
	f.users.add(t, "0600000000", "OldPass1")
	ctx := context.Background()

	u, err := f.flow.Authenticate(ctx, "0600000000", "OldPass1")
	require.NoError(t, err)
	require.Equal(t, "0600000000", u.Phone)

	_, err = f.flow.Authenticate(ctx, "0600000000", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown phone must be indistinguishable from a wrong password.
	_, err = f.flow.Authenticate(ctx, "0699999999", "OldPass1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	f := newFlowFixture()
	u := f.users.add(t, "0600000000", "OldPass1")
	u.IsActive = false

	_, err := f.flow.Authenticate(context.Background(), "0600000000", "OldPass1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRequestResetUnknownPhone(t *testing.T) {
	f := newFlowFixture()
	_, err := f.flow.RequestReset(context.Background(), "0612345678")
	require.ErrorIs(t, err, ErrUnknownPhone)
	require.Empty(t, f.delivery.sent)
}

func TestRequestResetIssuesSingleActiveCode(t *testing.T) {
	f := newFlowFixture()
	u := f.users.add(t, "0600000000", "OldPass1")
	ctx := context.Background()

	_, err := f.flow.RequestReset(ctx, "0600000000")
	require.NoError(t, err)
	require.Equal(t, 1, f.otps.count(u.ID))
	require.Len(t, f.delivery.sent, 1)
	require.Len(t, f.delivery.sent[0], 6)

	// A second request purges the first code and issues a new one.
	first := f.otps.current(u.ID)
	_, err = f.flow.RequestReset(ctx, "0600000000")
	require.NoError(t, err)
	require.Equal(t, 1, f.otps.count(u.ID))
	require.NotEqual(t, first, f.otps.current(u.ID))
}

func TestRequestResetSurvivesDeliveryFailure(t *testing.T) {
	f := newFlowFixture()
	f.users.add(t, "0600000000", "OldPass1")
	f.delivery.fail = true

	token, err := f.flow.RequestReset(context.Background(), "0600000000")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The intent exists even though the SMS never went out.
	_, ok, err := f.intents.Get(context.Background(), token)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyCode(t *testing.T) {
	f := newFlowFixture()
	u := f.users.add(t, "0600000000", "OldPass1")
	ctx := context.Background()

	token, err := f.flow.RequestReset(ctx, "0600000000")
	require.NoError(t, err)
	code := f.otps.current(u.ID)

	// A wrong code is rejected and the intent survives for a retry.
	require.ErrorIs(t, f.flow.VerifyCode(ctx, token, "000000"), ErrInvalidCode)
	intent, ok, err := f.intents.Get(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, intent.Verified)

	require.NoError(t, f.flow.VerifyCode(ctx, token, code))
	intent, ok, err = f.intents.Get(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, intent.Verified)
}

func TestVerifyCodeWithoutIntent(t *testing.T) {
	f := newFlowFixture()
	err := f.flow.VerifyCode(context.Background(), "no-such-token", "123456")
	require.ErrorIs(t, err, ErrNoPendingReset)
}

func TestReissueInvalidatesOldCode(t *testing.T) {
	f := newFlowFixture()
	u := f.users.add(t, "0600000000", "OldPass1")
	ctx := context.Background()

	_, err := f.flow.RequestReset(ctx, "0600000000")
	require.NoError(t, err)
	oldCode := f.otps.current(u.ID)

	token2, err := f.flow.RequestReset(ctx, "0600000000")
	require.NoError(t, err)

	require.ErrorIs(t, f.flow.VerifyCode(ctx, token2, oldCode), ErrInvalidCode)
	require.NoError(t, f.flow.VerifyCode(ctx, token2, f.otps.current(u.ID)))
}

func TestExpiredCodeRejected(t *testing.T) {
	f := newFlowFixture()
	u := f.users.add(t, "0600000000", "OldPass1")
	ctx := context.Background()

	token, err := f.flow.RequestReset(ctx, "0600000000")
	require.NoError(t, err)
	code := f.otps.current(u.ID)

	// Age the stored row past the TTL.
	f.otps.rows[u.ID][0].CreatedAt = time.Now().UTC().Add(-time.Hour)

	require.ErrorIs(t, f.flow.VerifyCode(ctx, token, code), ErrInvalidCode)
}

func TestCommitRequiresVerification(t *testing.T) {
	f := newFlowFixture()
	f.users.add(t, "0600000000", "OldPass1")
	ctx := context.Background()

	token, err := f.flow.RequestReset(ctx, "0600000000")
	require.NoError(t, err)

	err = f.flow.CommitPassword(ctx, token, "NewPass2")
	require.ErrorIs(t, err, ErrResetNotVerified)

	// The old password still works: nothing was committed.
	_, err = f.flow.Authenticate(ctx, "0600000000", "OldPass1")
	require.NoError(t, err)
}

func TestFullResetScenario(t *testing.T) {
	f := newFlowFixture()
	u := f.users.add(t, "0600000000", "OldPass1")
	ctx := context.Background()

	token, err := f.flow.RequestReset(ctx, "0600000000")
	require.NoError(t, err)
	code := f.otps.current(u.ID)
	require.Len(t, code, 6)

	require.NoError(t, f.flow.VerifyCode(ctx, token, code))
	require.NoError(t, f.flow.CommitPassword(ctx, token, "NewPass2"))

	// Old password rejected, new accepted.
	_, err = f.flow.Authenticate(ctx, "0600000000", "OldPass1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.flow.Authenticate(ctx, "0600000000", "NewPass2")
	require.NoError(t, err)

	// The ledger is clean, sessions are revoked, the intent is gone.
	require.Zero(t, f.otps.count(u.ID))
	require.Equal(t, []uint64{u.ID}, f.revoker.revoked)
	_, ok, err := f.intents.Get(ctx, token)
	require.NoError(t, err)
	require.False(t, ok)

	// The consumed token cannot commit a second time.
	err = f.flow.CommitPassword(ctx, token, "ThirdPass3")
	require.ErrorIs(t, err, ErrResetNotVerified)
}

func TestCommitSurvivesRevocationFailure(t *testing.T) {
	f := newFlowFixture()
	u := f.users.add(t, "0600000000", "OldPass1")
	f.revoker.fail = true
	ctx := context.Background()

	token, err := f.flow.RequestReset(ctx, "0600000000")
	require.NoError(t, err)
	require.NoError(t, f.flow.VerifyCode(ctx, token, f.otps.current(u.ID)))
	require.NoError(t, f.flow.CommitPassword(ctx, token, "NewPass2"))

	_, err = f.flow.Authenticate(ctx, "0600000000", "NewPass2")
	require.NoError(t, err)
}

func TestExpiredIntentBehavesAsNoPendingReset(t *testing.T) {
	f := newFlowFixture()
	u := f.users.add(t, "0600000000", "OldPass1")
	// Negative TTL: the intent is dead on arrival.
	f.flow = NewFlow(f.users, f.otps, f.revoker, f.intents, f.delivery, 4, 10*time.Minute, -time.Second)
	ctx := context.Background()

	token, err := f.flow.RequestReset(ctx, "0600000000")
	require.NoError(t, err)

	err = f.flow.VerifyCode(ctx, token, f.otps.current(u.ID))
	require.ErrorIs(t, err, ErrNoPendingReset)
	err = f.flow.CommitPassword(ctx, token, "NewPass2")
	require.ErrorIs(t, err, ErrResetNotVerified)
}
