// Package accounts keeps a local record of every identity the auth provider
// has signed in, and decorates session users with their account data.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/medpriceai/medprice-web/internal/auth"
	"github.com/medpriceai/medprice-web/storage/db"
)

// DefaultTouchInterval bounds how often an account's last_seen_at is rewritten.
const DefaultTouchInterval = time.Minute

var ErrNoSubject = errors.New("accounts: user has no provider subject")

var _ auth.Directory = (*Directory)(nil)

type Directory struct {
	queries  *db.Queries
	interval time.Duration
	now      func() time.Time
}

func NewDirectory(queries *db.Queries) *Directory {
	return &Directory{
		queries:  queries,
		interval: DefaultTouchInterval,
		now:      time.Now,
	}
}

// Touch records that u was seen through provider and returns a copy of u with
// AccountID and MemberSince filled in. The account row is created on first
// sight; afterwards its profile and last_seen_at are refreshed at most once
// per touch interval.
func (d *Directory) Touch(ctx context.Context, provider string, u *auth.User) (*auth.User, error) {
	if u == nil || u.ID == "" {
		return nil, ErrNoSubject
	}

	now := d.now()
	account, err := d.queries.UpsertAccount(ctx, db.UpsertAccountParams{
		ID:          ulid.Make().String(),
		Provider:    provider,
		Subject:     u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		ImageUrl:    u.ImageURL,
		SeenAt:      now.Unix(),
		StaleBefore: now.Add(-d.interval).Unix(),
	})
	if errors.Is(err, sql.ErrNoRows) {
		// Seen recently; the row was left untouched.
		account, err = d.queries.GetAccountBySubject(ctx, db.GetAccountBySubjectParams{
			Provider: provider,
			Subject:  u.ID,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to touch account %s/%s: %w", provider, u.ID, err)
	}

	synced := *u
	synced.AccountID = account.ID
	synced.MemberSince = time.Unix(account.FirstSeenAt, 0).UTC()
	return &synced, nil
}
