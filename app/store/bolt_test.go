package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBolt(t *testing.T) *Bolt {
	b, err := NewBolt(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, b.Close()) })
	return b
}

func TestBolt_PutGet(t *testing.T) {
	b := newTestBolt(t)
	ctx := context.Background()

	_, err := b.Get(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)

	u := User{
		ChatID:     "1",
		Username:   "user",
		Authorized: true,
		Prefs:      Prefs{Count: 5, Lang: "de", Topic: "world", Country: "de"},
	}
	require.NoError(t, b.Put(ctx, u))

	got, err := b.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestBolt_List(t *testing.T) {
	b := newTestBolt(t)
	ctx := context.Background()

	require.NoError(t, b.Put(ctx, User{ChatID: "2", Subscribed: true}))
	require.NoError(t, b.Put(ctx, User{ChatID: "1"}))
	require.NoError(t, b.Put(ctx, User{ChatID: "3", Subscribed: true}))

	all, err := b.List(ctx, ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []User{{ChatID: "1"}, {ChatID: "2", Subscribed: true}, {ChatID: "3", Subscribed: true}}, all)

	subs, err := b.List(ctx, ListRequest{OnlySubscribed: true})
	require.NoError(t, err)
	assert.Equal(t, []User{{ChatID: "2", Subscribed: true}, {ChatID: "3", Subscribed: true}}, subs)
}

func TestBolt_Update(t *testing.T) {
	b := newTestBolt(t)
	ctx := context.Background()

	_, err := b.Update(ctx, "1", func(*User) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Put(ctx, User{ChatID: "1", Username: "user"}))

	u, err := b.Update(ctx, "1", func(u *User) error {
		u.Prefs.Lang = "fr"
		u.ChatID = "other"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, User{ChatID: "1", Username: "user", Prefs: Prefs{Lang: "fr"}}, u)

	errRejected := errors.New("rejected")
	_, err = b.Update(ctx, "1", func(u *User) error {
		u.Prefs.Lang = "it"
		return errRejected
	})
	assert.ErrorIs(t, err, errRejected)

	got, err := b.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "fr", got.Prefs.Lang)
}

func TestBolt_Delete(t *testing.T) {
	b := newTestBolt(t)
	ctx := context.Background()

	assert.ErrorIs(t, b.Delete(ctx, "1"), ErrNotFound)

	require.NoError(t, b.Put(ctx, User{ChatID: "1"}))
	require.NoError(t, b.Delete(ctx, "1"))

	_, err := b.Get(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)
}
