package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsonthalia/travel-guardians/internal/common"
	"github.com/tsonthalia/travel-guardians/internal/store"
)

func newUserEnv(t *testing.T) (*Service, *Repository) {
	t.Helper()
	repo := NewRepository(store.NewMemory())
	return NewService(repo), repo
}

func TestCreateProfile(t *testing.T) {
	svc, repo := newUserEnv(t)
	ctx := context.Background()

	p, err := svc.CreateProfile(ctx, "u1", "alice", "alice@example.com", "Alice", "Grey")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
	assert.Empty(t, p.CreatedScams)
	assert.Empty(t, p.UpvotedScams)

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestCreateProfileKeepsLedgersOnResignup(t *testing.T) {
	svc, repo := newUserEnv(t)
	ctx := context.Background()

	_, err := svc.CreateProfile(ctx, "u1", "alice", "alice@example.com", "Alice", "Grey")
	require.NoError(t, err)
	require.NoError(t, repo.SetCreatedScams(ctx, "u1", []string{"s1"}))
	require.NoError(t, repo.SetScamVoteLedgers(ctx, "u1", []ScamVoteRef{{ScamID: "s2"}}, nil))

	// Повторная регистрация: имя/почта перезаписываются, леджеры остаются.
	p, err := svc.CreateProfile(ctx, "u1", "alice2", "new@example.com", "Alice", "Grey")
	require.NoError(t, err)

	assert.Equal(t, "alice2", p.Username)
	assert.Equal(t, []string{"s1"}, p.CreatedScams)
	require.Len(t, p.UpvotedScams, 1)
	assert.Equal(t, "s2", p.UpvotedScams[0].ScamID)
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _ := newUserEnv(t)

	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "alice", (&Profile{Username: "alice", FirstName: "Alice"}).DisplayName())
	assert.Equal(t, "Alice Grey", (&Profile{FirstName: "Alice", LastName: "Grey"}).DisplayName())
	assert.Equal(t, "Alice", (&Profile{FirstName: "Alice"}).DisplayName())
}

func TestLedgerHelpers(t *testing.T) {
	refs := []CommentVoteRef{
		{ScamID: "s1", CommentID: "c1"},
		{ScamID: "s1", CommentID: "c2"},
		{ScamID: "s2", CommentID: "c1"},
	}

	assert.True(t, HasCommentVote(refs, "s1", "c1"))
	assert.False(t, HasCommentVote(refs, "s2", "c2"))

	// Ключ составной: удаление (s1, c1) не задевает (s2, c1).
	rest := RemoveCommentVote(refs, "s1", "c1")
	require.Len(t, rest, 2)
	assert.True(t, HasCommentVote(rest, "s2", "c1"))
	assert.True(t, HasCommentVote(rest, "s1", "c2"))
}
