package pets

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
	"github.com/angelmondragon/pawhaven-backend/pkg/enums"
)

func setupPetsDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Pet{}))
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func seedPets(t *testing.T, repo *Repository) []models.Pet {
	t.Helper()
	owner := uuid.New()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	seed := []models.Pet{
		{Name: "Biscuit", Type: enums.PetTypeDog, Breed: strPtr("Labrador"), Age: intPtr(2), Size: enums.PetSizeLarge, Location: strPtr("Austin, TX"), Vaccinated: true, Price: floatPtr(250), IsForSale: true, Color: strPtr("Yellow")},
		{Name: "Mochi", Type: enums.PetTypeCat, Breed: strPtr("Scottish Fold"), Age: intPtr(5), Size: enums.PetSizeSmall, Location: strPtr("Denver"), SpayedNeutered: true, Price: floatPtr(80), Nature: strPtr("Calm and cuddly")},
		{Name: "Archie", Type: enums.PetTypeDog, Breed: strPtr("Beagle"), Age: intPtr(7), Location: strPtr("austin"), Vaccinated: true},
		{Name: "Kiwi", Type: enums.PetTypeBird, Age: intPtr(1), Size: enums.PetSizeSmall, Price: floatPtr(40), IsForSale: true},
		{Name: "Zorro", Type: enums.PetTypeCat, Breed: strPtr("Tabby 100%"), Age: intPtr(3), Price: floatPtr(120), Status: enums.PetStatusAvailable},
		{Name: "Labby", Type: enums.PetTypeRabbit, Age: intPtr(4), Price: floatPtr(60)},
		{Name: "Pending Pup", Type: enums.PetTypeDog, Breed: strPtr("Labrador"), Age: intPtr(3), Status: enums.PetStatusPending, Price: floatPtr(10)},
		{Name: "Sold Cat", Type: enums.PetTypeCat, Age: intPtr(2), Status: enums.PetStatusSold, Price: floatPtr(5)},
	}
	for i := range seed {
		seed[i].OwnerID = owner
		seed[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(context.Background(), &seed[i]))
	}
	return seed
}

func ids(list []models.Pet) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestRepositorySearchAgreesWithMatches(t *testing.T) {
	repo := NewRepository(setupPetsDB(t))
	seed := seedPets(t, repo)
	size := enums.PetSizeSmall

	cases := map[string]SearchParams{
		"all available":      {},
		"type dog":           {Types: []enums.PetType{enums.PetTypeDog}},
		"type set":           {Types: []enums.PetType{enums.PetTypeCat, enums.PetTypeBird}},
		"breed substring":    {Breed: "LAB"},
		"location substring": {Location: "austin"},
		"q name or breed":    {Query: "lab"},
		"size":               {Size: &size},
		"vaccinated":         {Vaccinated: boolPtr(true)},
		"spayed false":       {SpayedNeutered: boolPtr(false)},
		"for sale":           {IsForSale: boolPtr(true)},
		"age range":          {MinAge: floatPtr(2), MaxAge: floatPtr(5)},
		"min age only":       {MinAge: floatPtr(4)},
		"price range":        {MinPrice: floatPtr(50), MaxPrice: floatPtr(150)},
		"literal percent":    {Breed: "100%"},
		"nature":             {Nature: "cuddly"},
		"color":              {Color: "yell"},
		"combined":           {Types: []enums.PetType{enums.PetTypeDog}, Query: "bis", Vaccinated: boolPtr(true), MaxAge: floatPtr(3)},
	}

	for name, params := range cases {
		t.Run(name, func(t *testing.T) {
			query := BuildQuery(params)
			got, err := repo.Search(context.Background(), query)
			require.NoError(t, err)

			var want []models.Pet
			for _, p := range seed {
				if query.Matches(p) {
					want = append(want, p)
				}
			}
			for _, p := range got {
				assert.Equal(t, enums.PetStatusAvailable, p.Status)
				assert.True(t, query.Matches(p), "unexpected pet %s", p.Name)
			}
			assert.ElementsMatch(t, ids(want), ids(got))
		})
	}
}

func TestRepositorySearchAgeBounds(t *testing.T) {
	repo := NewRepository(setupPetsDB(t))
	seedPets(t, repo)

	got, err := repo.Search(context.Background(), BuildQuery(SearchParams{MinAge: floatPtr(2), MaxAge: floatPtr(5)}))
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, p := range got {
		require.NotNil(t, p.Age)
		assert.GreaterOrEqual(t, *p.Age, 2)
		assert.LessOrEqual(t, *p.Age, 5)
	}

	got, err = repo.Search(context.Background(), BuildQuery(SearchParams{MinAge: floatPtr(2)}))
	require.NoError(t, err)
	var sawOlder bool
	for _, p := range got {
		assert.GreaterOrEqual(t, *p.Age, 2)
		if *p.Age > 5 {
			sawOlder = true
		}
	}
	assert.True(t, sawOlder, "minAge alone must not impose an upper bound")
}

func TestRepositorySearchOrdering(t *testing.T) {
	repo := NewRepository(setupPetsDB(t))
	seedPets(t, repo)
	ctx := context.Background()

	byPrice, err := repo.Search(ctx, BuildQuery(SearchParams{Sort: enums.PetSortPriceLow}))
	require.NoError(t, err)
	var prices []float64
	seenNull := false
	for _, p := range byPrice {
		if p.Price == nil {
			seenNull = true
			continue
		}
		assert.False(t, seenNull, "priced pets must precede unpriced ones")
		prices = append(prices, *p.Price)
	}
	assert.True(t, sort.Float64sAreSorted(prices), "prices %v", prices)

	byPriceHigh, err := repo.Search(ctx, BuildQuery(SearchParams{Sort: enums.PetSortPriceHigh}))
	require.NoError(t, err)
	require.NotNil(t, byPriceHigh[0].Price)
	assert.Equal(t, 250.0, *byPriceHigh[0].Price)

	byName, err := repo.Search(ctx, BuildQuery(SearchParams{Sort: enums.PetSortName}))
	require.NoError(t, err)
	names := make([]string, 0, len(byName))
	for _, p := range byName {
		names = append(names, p.Name)
	}
	assert.True(t, sort.StringsAreSorted(names), "names %v", names)

	newest, err := repo.Search(ctx, BuildQuery(SearchParams{Sort: enums.PetSortNewest}))
	require.NoError(t, err)
	assert.Equal(t, "Labby", newest[0].Name)

	oldest, err := repo.Search(ctx, BuildQuery(SearchParams{Sort: enums.PetSortOldest}))
	require.NoError(t, err)
	assert.Equal(t, "Biscuit", oldest[0].Name)
}

func TestRepositoryRoundTripAndDelete(t *testing.T) {
	repo := NewRepository(setupPetsDB(t))
	ctx := context.Background()

	pet := &models.Pet{
		OwnerID:     uuid.New(),
		Name:        "Pepper",
		Type:        enums.PetTypeDog,
		Breed:       strPtr("Poodle"),
		Age:         intPtr(4),
		Likes:       []string{"walks", "squeaky toys"},
		Dislikes:    []string{"baths"},
		Images:      []string{"https://cdn.example.com/pepper.jpg"},
		Price:       floatPtr(0),
		Description: strPtr("Friendly"),
		Featured:    true,
	}
	require.NoError(t, repo.Create(ctx, pet))

	loaded, err := repo.FindByID(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, pet.Name, loaded.Name)
	assert.Equal(t, []string{"walks", "squeaky toys"}, loaded.Likes)
	assert.Equal(t, []string{"baths"}, loaded.Dislikes)
	assert.Equal(t, pet.Images, loaded.Images)
	assert.Equal(t, enums.PetSizeMedium, loaded.Size)
	require.NotNil(t, loaded.Price)
	assert.Equal(t, 0.0, *loaded.Price)
	assert.False(t, loaded.IsForSale)
	assert.True(t, loaded.Featured)

	require.NoError(t, repo.UpdateStatus(ctx, pet.ID, enums.PetStatusPending))
	loaded, err = repo.FindByID(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PetStatusPending, loaded.Status)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), enums.PetStatusPending), gorm.ErrRecordNotFound)

	deleted, err := repo.Delete(ctx, pet.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, pet.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.FindByID(ctx, pet.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
