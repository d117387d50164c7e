package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsonthalia/travel-guardians/internal/features/locations"
	"github.com/tsonthalia/travel-guardians/internal/features/scams"
	"github.com/tsonthalia/travel-guardians/internal/store"
)

type jobEnv struct {
	m         *Maintenance
	scamsRepo *scams.Repository
	locRepo   *locations.Repository
}

func newJobEnv(t *testing.T) *jobEnv {
	t.Helper()
	db := store.NewMemory()
	scamsRepo := scams.NewRepository(db)
	locRepo := locations.NewRepository(db)
	return &jobEnv{
		m:         NewMaintenance(scamsRepo, locRepo),
		scamsRepo: scamsRepo,
		locRepo:   locRepo,
	}
}

func TestReconcileVotesFixesDrift(t *testing.T) {
	env := newJobEnv(t)
	ctx := context.Background()

	// Пост с расхождением: два голоса вверх, один вниз, счётчик врёт.
	id, err := env.scamsRepo.Create(ctx, &scams.Scam{
		Title:      "a",
		Upvoters:   []scams.VoteRecord{{UserID: "u1"}, {UserID: "u2"}},
		Downvoters: []scams.VoteRecord{{UserID: "u3"}},
		NetVotes:   7,
		Comments: []scams.Comment{
			{ID: "c1", Upvoters: []scams.VoteRecord{{UserID: "u1"}}, NetVotes: -4},
			{ID: "c2", NetVotes: 0}, // уже сходится, не трогаем
		},
		CommentCount: 2,
	})
	require.NoError(t, err)

	require.NoError(t, env.m.ReconcileVotes(ctx))

	got, err := env.scamsRepo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.NetVotes)
	assert.Equal(t, 1, got.Comments[0].NetVotes)
	assert.Equal(t, 0, got.Comments[1].NetVotes)
	assert.Equal(t, 2, got.CommentCount)
}

func TestReconcileVotesNoDriftNoWrites(t *testing.T) {
	env := newJobEnv(t)
	ctx := context.Background()

	id, err := env.scamsRepo.Create(ctx, &scams.Scam{
		Title:    "a",
		Upvoters: []scams.VoteRecord{{UserID: "u1"}},
		NetVotes: 1,
	})
	require.NoError(t, err)

	require.NoError(t, env.m.ReconcileVotes(ctx))

	got, err := env.scamsRepo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.NetVotes)
}

func TestDedupeLocationsMergesDuplicates(t *testing.T) {
	env := newJobEnv(t)
	ctx := context.Background()

	// Два континента "South America" (дубль из гонки создания),
	// страна и город висят на проигравшем.
	contA, err := env.locRepo.Create(ctx, &locations.Node{Kind: locations.KindContinent, Continent: "South America"})
	require.NoError(t, err)
	contB, err := env.locRepo.Create(ctx, &locations.Node{Kind: locations.KindContinent, Continent: "south america"})
	require.NoError(t, err)

	country, err := env.locRepo.Create(ctx, &locations.Node{
		Kind: locations.KindCountry, Country: "Peru", Continent: "South America",
		ContinentID: contB,
	})
	require.NoError(t, err)
	city, err := env.locRepo.Create(ctx, &locations.Node{
		Kind: locations.KindCity, City: "Lima", Country: "Peru", Continent: "South America",
		CountryID: country, ContinentID: contB,
	})
	require.NoError(t, err)

	scamID, err := env.scamsRepo.Create(ctx, &scams.Scam{
		Title: "a",
		Locations: []locations.Resolved{{
			CityID: city, CountryID: country, ContinentID: contB,
			City: "Lima", Country: "Peru", Continent: "South America",
		}},
	})
	require.NoError(t, err)

	require.NoError(t, env.m.DedupeLocations(ctx))

	// Проигравший удалён, выживший — первый по времени создания.
	_, err = env.locRepo.Get(ctx, contB)
	assert.Error(t, err)
	_, err = env.locRepo.Get(ctx, contA)
	require.NoError(t, err)

	// Ссылки детей и поста переведены на выжившего.
	gotCountry, err := env.locRepo.Get(ctx, country)
	require.NoError(t, err)
	assert.Equal(t, contA, gotCountry.ContinentID)

	gotCity, err := env.locRepo.Get(ctx, city)
	require.NoError(t, err)
	assert.Equal(t, contA, gotCity.ContinentID)
	assert.Equal(t, country, gotCity.CountryID)

	gotScam, err := env.scamsRepo.Get(ctx, scamID)
	require.NoError(t, err)
	require.Len(t, gotScam.Locations, 1)
	assert.Equal(t, contA, gotScam.Locations[0].ContinentID)
	assert.Equal(t, city, gotScam.Locations[0].CityID)
}

func TestDedupeLocationsLeavesDistinctNodesAlone(t *testing.T) {
	env := newJobEnv(t)
	ctx := context.Background()

	// Одинаковые города в разных странах — не дубли.
	_, err := env.locRepo.Create(ctx, &locations.Node{
		Kind: locations.KindCity, City: "Paris", Country: "France", Continent: "Europe",
	})
	require.NoError(t, err)
	_, err = env.locRepo.Create(ctx, &locations.Node{
		Kind: locations.KindCity, City: "Paris", Country: "USA", Continent: "North America",
	})
	require.NoError(t, err)

	require.NoError(t, env.m.DedupeLocations(ctx))

	nodes, err := env.locRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
}
