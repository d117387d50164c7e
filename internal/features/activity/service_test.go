package activity

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

type activityEnv struct {
	svc       *Service
	scamsRepo *scams.Repository
	usersRepo *users.Repository
}

func newActivityEnv(t *testing.T) *activityEnv {
	t.Helper()
	db := store.NewMemory()
	scamsRepo := scams.NewRepository(db)
	usersRepo := users.NewRepository(db)
	return &activityEnv{
		svc:       NewService(usersRepo, scamsRepo),
		scamsRepo: scamsRepo,
		usersRepo: usersRepo,
	}
}

func (e *activityEnv) addScam(t *testing.T, s *scams.Scam) string {
	t.Helper()
	id, err := e.scamsRepo.Create(context.Background(), s)
	require.NoError(t, err)
	return id
}

func TestActivityMergesSourcesIntoOneRecord(t *testing.T) {
	env := newActivityEnv(t)
	ctx := context.Background()

	scamID := env.addScam(t, &scams.Scam{
		Title: "Fake tour agency", AuthorID: "u1",
		Comments: []scams.Comment{{ID: "c1", AuthorID: "u1", Text: "update: refunded"}},
	})

	// Пользователь и автор, и голосовавший, и комментатор одного поста.
	require.NoError(t, env.usersRepo.Create(ctx, &users.Profile{
		ID:           "u1",
		CreatedScams: []string{scamID},
		UpvotedScams: []users.ScamVoteRef{{ScamID: scamID, VotedAt: time.Now()}},
		Comments:     []users.CommentRef{{ScamID: scamID, CommentID: "c1"}},
		UpvotedComments: []users.CommentVoteRef{
			{ScamID: scamID, CommentID: "c1"},
		},
	}))

	records, err := env.svc.GetUserActivity(ctx, "u1")
	require.NoError(t, err)

	// Все связи слиты в одну запись.
	require.Len(t, records, 1)
	rec := records[0]
	assert.True(t, rec.IsAuthor)
	assert.True(t, rec.IsUpvoted)
	assert.False(t, rec.IsDownvoted)
	require.Len(t, rec.Comments, 1)
	assert.Equal(t, "c1", rec.Comments[0].ID)
	require.Len(t, rec.UpvotedComments, 1)
	assert.Empty(t, rec.DownvotedComments)
	assert.Equal(t, scamID, rec.Scam.ID)
}

func TestActivitySkipsDeletedContent(t *testing.T) {
	env := newActivityEnv(t)
	ctx := context.Background()

	scamID := env.addScam(t, &scams.Scam{Title: "Street game", AuthorID: "u2"})

	// Леджер ссылается на удалённый пост и на исчезнувший комментарий.
	require.NoError(t, env.usersRepo.Create(ctx, &users.Profile{
		ID:             "u1",
		CreatedScams:   []string{"deleted-scam"},
		DownvotedScams: []users.ScamVoteRef{{ScamID: scamID}},
		UpvotedComments: []users.CommentVoteRef{
			{ScamID: scamID, CommentID: "gone"},
		},
	}))

	records, err := env.svc.GetUserActivity(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, scamID, rec.Scam.ID)
	assert.False(t, rec.IsAuthor)
	assert.True(t, rec.IsDownvoted)
	assert.Empty(t, rec.UpvotedComments)
}

func TestActivityEmptyProfile(t *testing.T) {
	env := newActivityEnv(t)
	ctx := context.Background()

	require.NoError(t, env.usersRepo.Create(ctx, &users.Profile{ID: "u1"}))

	records, err := env.svc.GetUserActivity(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestActivityUnknownUser(t *testing.T) {
	env := newActivityEnv(t)

	_, err := env.svc.GetUserActivity(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestActivityOrderFollowsFirstMention(t *testing.T) {
	env := newActivityEnv(t)
	ctx := context.Background()

	a := env.addScam(t, &scams.Scam{Title: "A", AuthorID: "u1"})
	b := env.addScam(t, &scams.Scam{Title: "B", AuthorID: "u2"})

	// b упоминается раньше a: сначала голоса, потом авторство.
	require.NoError(t, env.usersRepo.Create(ctx, &users.Profile{
		ID:           "u1",
		CreatedScams: []string{a},
		UpvotedScams: []users.ScamVoteRef{{ScamID: b}},
	}))

	records, err := env.svc.GetUserActivity(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, a, records[0].Scam.ID)
	assert.Equal(t, b, records[1].Scam.ID)
}
