package votes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsonthalia/travel-guardians/internal/common"
	"github.com/tsonthalia/travel-guardians/internal/features/scams"
	"github.com/tsonthalia/travel-guardians/internal/features/users"
	"github.com/tsonthalia/travel-guardians/internal/store"
)

type voteEnv struct {
	svc       *Service
	scamsRepo *scams.Repository
	usersRepo *users.Repository
	scamID    string
}

// newVoteEnv поднимает in-memory хранилище с двумя профилями и одним
// постом с двумя комментариями.
func newVoteEnv(t *testing.T) *voteEnv {
	t.Helper()
	ctx := context.Background()

	db := store.NewMemory()
	scamsRepo := scams.NewRepository(db)
	usersRepo := users.NewRepository(db)

	require.NoError(t, usersRepo.Create(ctx, &users.Profile{ID: "u1", Username: "alice"}))
	require.NoError(t, usersRepo.Create(ctx, &users.Profile{ID: "u2", Username: "bob"}))

	scamID, err := scamsRepo.Create(ctx, &scams.Scam{
		Title:       "Taxi meter rigged",
		Description: "Driver tripled the fare",
		AuthorID:    "u2",
		AuthorName:  "bob",
		CreatedAt:   time.Now().UTC(),
		Comments: []scams.Comment{
			{ID: "c1", AuthorID: "u2", AuthorName: "bob", Text: "happened to me too"},
			{ID: "c2", AuthorID: "u1", AuthorName: "alice", Text: "which street?"},
		},
		CommentCount: 2,
	})
	require.NoError(t, err)

	return &voteEnv{
		svc:       NewService(scamsRepo, usersRepo),
		scamsRepo: scamsRepo,
		usersRepo: usersRepo,
		scamID:    scamID,
	}
}

func TestPressUpvoteFromNone(t *testing.T) {
	env := newVoteEnv(t)
	ctx := context.Background()

	res, err := env.svc.PressUpvote(ctx, env.scamID, "u1")
	require.NoError(t, err)

	assert.True(t, res.IsUpvoted)
	assert.False(t, res.IsDownvoted)
	assert.Equal(t, 1, res.NetVotes)

	// Обе стороны записаны: агрегат поста и личный леджер.
	scam, err := env.scamsRepo.Get(ctx, env.scamID)
	require.NoError(t, err)
	require.Len(t, scam.Upvoters, 1)
	assert.Equal(t, "u1", scam.Upvoters[0].UserID)
	assert.Empty(t, scam.Downvoters)
	assert.Equal(t, 1, scam.NetVotes)

	profile, err := env.usersRepo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, users.HasScamVote(profile.UpvotedScams, env.scamID))
	assert.Equal(t, StateUpvoted, ScamVoteState(profile, env.scamID))
}

func TestPressUpvoteTwiceRemovesVote(t *testing.T) {
	env := newVoteEnv(t)
	ctx := context.Background()

	_, err := env.svc.PressUpvote(ctx, env.scamID, "u1")
	require.NoError(t, err)

	res, err := env.svc.PressUpvote(ctx, env.scamID, "u1")
	require.NoError(t, err)

	assert.False(t, res.IsUpvoted)
	assert.False(t, res.IsDownvoted)
	assert.Equal(t, 0, res.NetVotes)

	scam, err := env.scamsRepo.Get(ctx, env.scamID)
	require.NoError(t, err)
	assert.Empty(t, scam.Upvoters)
	assert.Equal(t, 0, scam.NetVotes)

	profile, err := env.usersRepo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, StateNone, ScamVoteState(profile, env.scamID))
}

func TestPressDownAfterUpSwingsByTwo(t *testing.T) {
	env := newVoteEnv(t)
	ctx := context.Background()

	_, err := env.svc.PressUpvote(ctx, env.scamID, "u1")
	require.NoError(t, err)

	res, err := env.svc.PressDownvote(ctx, env.scamID, "u1")
	require.NoError(t, err)

	assert.False(t, res.IsUpvoted)
	assert.True(t, res.IsDownvoted)
	assert.Equal(t, -1, res.NetVotes) // качание с +1 на −1

	// Пользователь состоит ровно в одном множестве.
	scam, err := env.scamsRepo.Get(ctx, env.scamID)
	require.NoError(t, err)
	assert.Empty(t, scam.Upvoters)
	require.Len(t, scam.Downvoters, 1)
	assert.Equal(t, "u1", scam.Downvoters[0].UserID)

	profile, err := env.usersRepo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, users.HasScamVote(profile.UpvotedScams, env.scamID))
	assert.True(t, users.HasScamVote(profile.DownvotedScams, env.scamID))
}

func TestVotesFromTwoUsersAreIndependent(t *testing.T) {
	env := newVoteEnv(t)
	ctx := context.Background()

	_, err := env.svc.PressUpvote(ctx, env.scamID, "u1")
	require.NoError(t, err)
	res, err := env.svc.PressDownvote(ctx, env.scamID, "u2")
	require.NoError(t, err)

	assert.Equal(t, 0, res.NetVotes)

	scam, err := env.scamsRepo.Get(ctx, env.scamID)
	require.NoError(t, err)
	require.Len(t, scam.Upvoters, 1)
	require.Len(t, scam.Downvoters, 1)
	assert.Equal(t, "u1", scam.Upvoters[0].UserID)
	assert.Equal(t, "u2", scam.Downvoters[0].UserID)
}

func TestNetVotesDerivedFromMembership(t *testing.T) {
	env := newVoteEnv(t)
	ctx := context.Background()

	// Портим сохранённый счётчик: членство пустое, netvotes = 42.
	scam, err := env.scamsRepo.Get(ctx, env.scamID)
	require.NoError(t, err)
	require.NoError(t, env.scamsRepo.SetVotes(ctx, env.scamID, scam.Upvoters, scam.Downvoters, 42))

	// Любое нажатие перевычисляет счётчик из множеств.
	res, err := env.svc.PressUpvote(ctx, env.scamID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.NetVotes)

	scam, err = env.scamsRepo.Get(ctx, env.scamID)
	require.NoError(t, err)
	assert.Equal(t, 1, scam.NetVotes)
}

func TestPressVoteNotFound(t *testing.T) {
	env := newVoteEnv(t)
	ctx := context.Background()

	_, err := env.svc.PressUpvote(ctx, "missing", "u1")
	assert.ErrorIs(t, err, common.ErrScamNotFound)

	_, err = env.svc.PressUpvote(ctx, env.scamID, "ghost")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestCommentVoteToggle(t *testing.T) {
	env := newVoteEnv(t)
	ctx := context.Background()

	res, err := env.svc.PressCommentUpvote(ctx, env.scamID, "c1", "u1")
	require.NoError(t, err)
	assert.True(t, res.IsUpvoted)
	assert.Equal(t, 1, res.NetVotes)

	// Переворот вниз: качание на 2.
	res, err = env.svc.PressCommentDownvote(ctx, env.scamID, "c1", "u1")
	require.NoError(t, err)
	assert.True(t, res.IsDownvoted)
	assert.Equal(t, -1, res.NetVotes)

	// Повторное нажатие вниз — снятие.
	res, err = env.svc.PressCommentDownvote(ctx, env.scamID, "c1", "u1")
	require.NoError(t, err)
	assert.False(t, res.IsDownvoted)
	assert.Equal(t, 0, res.NetVotes)

	profile, err := env.usersRepo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, StateNone, CommentVoteState(profile, env.scamID, "c1"))
}

func TestCommentVoteUsesCompositeKey(t *testing.T) {
	env := newVoteEnv(t)
	ctx := context.Background()

	_, err := env.svc.PressCommentUpvote(ctx, env.scamID, "c1", "u1")
	require.NoError(t, err)
	_, err = env.svc.PressCommentUpvote(ctx, env.scamID, "c2", "u1")
	require.NoError(t, err)

	// Голос за c1 не трогает c2 и наоборот.
	scam, err := env.scamsRepo.Get(ctx, env.scamID)
	require.NoError(t, err)
	assert.Equal(t, 1, scam.Comments[0].NetVotes)
	assert.Equal(t, 1, scam.Comments[1].NetVotes)

	profile, err := env.usersRepo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, users.HasCommentVote(profile.UpvotedComments, env.scamID, "c1"))
	assert.True(t, users.HasCommentVote(profile.UpvotedComments, env.scamID, "c2"))

	// Снятие голоса за c1 оставляет голос за c2.
	_, err = env.svc.PressCommentUpvote(ctx, env.scamID, "c1", "u1")
	require.NoError(t, err)
	profile, err = env.usersRepo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, users.HasCommentVote(profile.UpvotedComments, env.scamID, "c1"))
	assert.True(t, users.HasCommentVote(profile.UpvotedComments, env.scamID, "c2"))
}

func TestCommentVoteKeepsCommentCount(t *testing.T) {
	env := newVoteEnv(t)
	ctx := context.Background()

	_, err := env.svc.PressCommentUpvote(ctx, env.scamID, "c1", "u1")
	require.NoError(t, err)

	scam, err := env.scamsRepo.Get(ctx, env.scamID)
	require.NoError(t, err)
	assert.Equal(t, 2, scam.CommentCount)
	assert.Len(t, scam.Comments, 2)
}

func TestCommentVoteCommentNotFound(t *testing.T) {
	env := newVoteEnv(t)

	_, err := env.svc.PressCommentUpvote(context.Background(), env.scamID, "missing", "u1")
	assert.ErrorIs(t, err, common.ErrCommentNotFound)
}
