package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storerating/app/models"
	"github.com/shashiranjanraj/storerating/app/repositories"
	"github.com/shashiranjanraj/storerating/app/services"
	"github.com/shashiranjanraj/storerating/config"
	"github.com/shashiranjanraj/storerating/internal/testdb"
	"github.com/shashiranjanraj/storerating/pkg/apperr"
	"github.com/shashiranjanraj/storerating/pkg/auth"
	"github.com/shashiranjanraj/storerating/pkg/cache"
	"github.com/shashiranjanraj/storerating/pkg/event"
)

type fixture struct {
	auth   *services.AuthService
	admin  *services.AdminService
	owner  *services.OwnerService
	rating *services.RatingService
	rev    *auth.Revocations
	fired  []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	config.Set("JWT_SECRET", "test-secret")
	t.Cleanup(func() { config.Unset("JWT_SECRET") })

	db := testdb.New(t)
	users := repositories.NewUserRepository(db)
	stores := repositories.NewStoreRepository(db)
	ratings := repositories.NewRatingRepository(db)

	f := &fixture{rev: auth.NewRevocations(cache.NewMemory())}
	events := event.NewDispatcher()
	events.ListenAll(func(_ context.Context, e event.Event) { f.fired = append(f.fired, e.Name) })

	f.auth = services.NewAuthService(users, f.rev, events)
	f.admin = services.NewAdminService(users, stores, ratings, events)
	f.owner = services.NewOwnerService(stores, ratings, events)
	f.rating = services.NewRatingService(stores, ratings, events)
	return f
}

func (f *fixture) register(t *testing.T, email, role string) uint {
	t.Helper()
	in := services.RegisterInput{
		Name:     "Test Account Holder Name",
		Email:    email,
		Password: "Secret@123",
		Address:  "1 Test Street",
		Role:     role,
	}
	var (
		id  uint
		err error
	)
	if role == models.RoleAdmin {
		id, err = f.auth.CreateAdmin(context.Background(), in)
	} else {
		id, err = f.auth.Register(context.Background(), in)
	}
	require.NoError(t, err)
	return id
}

func (f *fixture) store(t *testing.T, ownerID uint, name, email string) uint {
	t.Helper()
	id, err := f.owner.CreateStore(context.Background(), ownerID, services.CreateStoreInput{
		Name:    name,
		Email:   email,
		Address: "42 Market Road",
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) rate(t *testing.T, userID, storeID uint, score int) {
	t.Helper()
	_, err := f.rating.Rate(context.Background(), userID, services.RateInput{StoreID: storeID, Rating: score})
	require.NoError(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.auth.Register(ctx, services.RegisterInput{
		Name:     "  Regular Customer Account  ",
		Email:    " Customer@Example.COM ",
		Password: "Secret@123",
		Role:     models.RoleUser,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, []string{event.UserRegistered}, f.fired)

	res, err := f.auth.Login(ctx, services.LoginInput{Email: "customer@example.com", Password: "Secret@123"})
	require.NoError(t, err)
	assert.Equal(t, id, res.User.ID)
	assert.Equal(t, "customer@example.com", res.User.Email)
	assert.Equal(t, "Regular Customer Account", res.User.Name)

	claims, err := auth.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "dup@example.com", models.RoleUser)

	_, err := f.auth.Register(context.Background(), services.RegisterInput{
		Name:     "Another Account Holder",
		Email:    "DUP@example.com",
		Password: "Secret@123",
		Role:     models.RoleOwner,
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register(context.Background(), services.RegisterInput{
		Name:     "Short",
		Email:    "not-an-email",
		Password: "weak",
		Role:     "superuser",
	})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	for _, field := range []string{"name", "email", "password", "role"} {
		assert.Contains(t, e.Fields, field)
	}
}

func TestRegisterRejectsAdminUnlessAllowed(t *testing.T) {
	f := newFixture(t)
	in := services.RegisterInput{
		Name:     "Would Be Administrator",
		Email:    "boss@example.com",
		Password: "Secret@123",
		Role:     models.RoleAdmin,
	}

	_, err := f.auth.Register(context.Background(), in)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, e.Fields, "role")

	config.Set("ALLOW_ADMIN_SIGNUP", "true")
	t.Cleanup(func() { config.Unset("ALLOW_ADMIN_SIGNUP") })
	_, err = f.auth.Register(context.Background(), in)
	assert.NoError(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	f.register(t, "known@example.com", models.RoleUser)
	ctx := context.Background()

	_, unknown := f.auth.Login(ctx, services.LoginInput{Email: "nobody@example.com", Password: "Secret@123"})
	_, wrong := f.auth.Login(ctx, services.LoginInput{Email: "known@example.com", Password: "Wrong@123"})

	assert.ErrorIs(t, unknown, services.ErrInvalidCredentials)
	assert.ErrorIs(t, wrong, services.ErrInvalidCredentials)
	assert.Equal(t, unknown.Error(), wrong.Error())
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(wrong))
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "pw@example.com", models.RoleUser)
	ctx := context.Background()

	err := f.auth.ChangePassword(ctx, id, services.ChangePasswordInput{CurrentPassword: "Nope@1234", NewPassword: "Better@456"})
	assert.ErrorIs(t, err, services.ErrWrongPassword)

	err = f.auth.ChangePassword(ctx, id, services.ChangePasswordInput{CurrentPassword: "Secret@123", NewPassword: "short"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	require.NoError(t, f.auth.ChangePassword(ctx, id, services.ChangePasswordInput{CurrentPassword: "Secret@123", NewPassword: "Better@456"}))

	_, err = f.auth.Login(ctx, services.LoginInput{Email: "pw@example.com", Password: "Secret@123"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, services.LoginInput{Email: "pw@example.com", Password: "Better@456"})
	assert.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	f.register(t, "out@example.com", models.RoleUser)
	ctx := context.Background()

	res, err := f.auth.Login(ctx, services.LoginInput{Email: "out@example.com", Password: "Secret@123"})
	require.NoError(t, err)
	claims, err := auth.ValidateToken(res.Token)
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(ctx, claims))
	revoked, err := f.rev.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestStoreAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", models.RoleOwner)
	rated := f.store(t, owner, "Premium Coffee Shop Downtown", "coffee@example.com")
	empty := f.store(t, owner, "Empty Shelves General Store", "empty@example.com")

	for i, score := range []int{5, 4, 5} {
		u := f.register(t, []string{"a@example.com", "b@example.com", "c@example.com"}[i], models.RoleUser)
		f.rate(t, u, rated, score)
	}

	stores, err := f.admin.ListStores(ctx, repositories.StoreFilter{Sort: "name:asc"})
	require.NoError(t, err)
	require.Len(t, stores, 2)

	assert.Equal(t, empty, stores[0].ID)
	assert.Nil(t, stores[0].AverageRating)
	assert.Zero(t, stores[0].RatingCount)

	assert.Equal(t, rated, stores[1].ID)
	require.NotNil(t, stores[1].AverageRating)
	assert.InDelta(t, 14.0/3.0, *stores[1].AverageRating, 1e-9)
	assert.EqualValues(t, 3, stores[1].RatingCount)
}

func TestListStoresSortAndFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", models.RoleOwner)
	user := f.register(t, "user@example.com", models.RoleUser)
	low := f.store(t, owner, "Alpha Hardware And Tools", "alpha@example.com")
	high := f.store(t, owner, "Beta Bakery And Pastry Co", "beta@example.com")
	f.rate(t, user, low, 2)
	f.rate(t, user, high, 5)

	stores, err := f.rating.ListStores(ctx, user, repositories.StoreFilter{Sort: "average_rating:DESC"})
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, high, stores[0].ID)
	require.NotNil(t, stores[0].UserRating)
	assert.Equal(t, 5, *stores[0].UserRating)

	stores, err = f.rating.ListStores(ctx, user, repositories.StoreFilter{Name: "bakery"})
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, high, stores[0].ID)

	// Unknown sort keys fall back to newest first.
	stores, err = f.rating.ListStores(ctx, user, repositories.StoreFilter{Sort: "name; DROP TABLE stores"})
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, high, stores[0].ID)
}

func storeIDs(rows []models.StoreSummary) []uint {
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func ratedIDs(rows []models.RatedStoreSummary) []uint {
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestStoreSortAllowListsPerRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", models.RoleOwner)
	user := f.register(t, "user@example.com", models.RoleUser)
	alpha := f.store(t, owner, "Alpha Hardware And Tools", "alpha@example.com")
	beta := f.store(t, owner, "Beta Bakery And Pastry Co", "beta@example.com")
	newestFirst := []uint{beta, alpha}

	admin, err := f.admin.ListStores(ctx, repositories.StoreFilter{Sort: "email:asc"})
	require.NoError(t, err)
	assert.Equal(t, []uint{alpha, beta}, storeIDs(admin))

	for _, sort := range []string{"email:asc", "password:asc", "name:drop table", "name", ""} {
		stores, err := f.rating.ListStores(ctx, user, repositories.StoreFilter{Sort: sort})
		require.NoError(t, err, sort)
		assert.Equal(t, newestFirst, ratedIDs(stores), sort)
	}

	stores, err := f.rating.ListStores(ctx, user, repositories.StoreFilter{Sort: "name:asc"})
	require.NoError(t, err)
	assert.Equal(t, []uint{alpha, beta}, ratedIDs(stores))
}

func TestListStoresUserRatingIsPerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", models.RoleOwner)
	rater := f.register(t, "rater@example.com", models.RoleUser)
	other := f.register(t, "other@example.com", models.RoleUser)
	store := f.store(t, owner, "Organic Grocery Market Fresh", "grocer@example.com")
	f.rate(t, rater, store, 3)

	stores, err := f.rating.ListStores(ctx, other, repositories.StoreFilter{})
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Nil(t, stores[0].UserRating)
	assert.EqualValues(t, 1, stores[0].RatingCount)
}

func TestRateLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com", models.RoleOwner)
	user := f.register(t, "user@example.com", models.RoleUser)
	store := f.store(t, owner, "Sports Equipment Super Store", "sports@example.com")

	err := f.rating.UpdateRating(ctx, user, store, services.UpdateRatingInput{Rating: 3})
	assert.ErrorIs(t, err, services.ErrRatingNotFound)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = f.rating.Rate(ctx, user, services.RateInput{StoreID: store, Rating: 6})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = f.rating.Rate(ctx, user, services.RateInput{StoreID: 9999, Rating: 4})
	assert.ErrorIs(t, err, services.ErrStoreNotFound)

	f.rate(t, user, store, 4)

	_, err = f.rating.Rate(ctx, user, services.RateInput{StoreID: store, Rating: 2})
	assert.ErrorIs(t, err, services.ErrAlreadyRated)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	require.NoError(t, f.rating.UpdateRating(ctx, user, store, services.UpdateRatingInput{Rating: 1}))

	mine, err := f.rating.MyRatings(ctx, user)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 1, mine[0].Rating)
	assert.Equal(t, "Sports Equipment Super Store", mine[0].StoreName)

	assert.Contains(t, f.fired, event.RatingCreated)
	assert.Contains(t, f.fired, event.RatingUpdated)
}

func TestOwnerIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice@example.com", models.RoleOwner)
	bob := f.register(t, "bob@example.com", models.RoleOwner)
	user := f.register(t, "user@example.com", models.RoleUser)
	store := f.store(t, alice, "Fashion Boutique Trendy Styles", "fashion@example.com")
	f.rate(t, user, store, 5)

	_, err := f.owner.GetStore(ctx, bob, store)
	assert.ErrorIs(t, err, services.ErrOwnedStoreNotFound)
	_, err = f.owner.StoreRatings(ctx, bob, store)
	assert.ErrorIs(t, err, services.ErrOwnedStoreNotFound)

	got, err := f.owner.GetStore(ctx, alice, store)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.RatingCount)

	ratings, err := f.owner.StoreRatings(ctx, alice, store)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, "user@example.com", ratings[0].UserEmail)

	dash, err := f.owner.Dashboard(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, dash)
	assert.NotNil(t, dash)
}

func TestCreateStoreDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner@example.com", models.RoleOwner)
	f.store(t, owner, "Electronics Retail Store Megamart", "shop@example.com")

	_, err := f.owner.CreateStore(context.Background(), owner, services.CreateStoreInput{
		Name:    "Electronics Retail Store Annex",
		Email:   "Shop@Example.com",
		Address: "2 Side Street",
	})
	assert.ErrorIs(t, err, services.ErrStoreEmailTaken)
}

func TestCreateStoreForDeletedOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.register(t, "admin@example.com", models.RoleAdmin)
	owner := f.register(t, "owner@example.com", models.RoleOwner)
	require.NoError(t, f.admin.DeleteUser(ctx, admin, owner))

	_, err := f.owner.CreateStore(ctx, owner, services.CreateStoreInput{
		Name:    "Premium Coffee Shop Downtown",
		Email:   "coffee@example.com",
		Address: "100 Main Street",
	})
	assert.ErrorIs(t, err, services.ErrAccountGone)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.register(t, "admin@example.com", models.RoleAdmin)
	owner := f.register(t, "owner@example.com", models.RoleOwner)
	user := f.register(t, "user@example.com", models.RoleUser)
	store := f.store(t, owner, "Premium Coffee Shop Downtown", "coffee@example.com")
	f.rate(t, user, store, 5)

	err := f.admin.DeleteUser(ctx, admin, admin)
	assert.ErrorIs(t, err, services.ErrSelfDelete)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	assert.ErrorIs(t, f.admin.DeleteUser(ctx, admin, 9999), services.ErrUserNotFound)

	require.NoError(t, f.admin.DeleteUser(ctx, admin, owner))
	assert.Contains(t, f.fired, event.UserDeleted)

	stats, err := f.admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, services.DashboardStats{
		TotalUsers:   2,
		TotalStores:  0,
		TotalRatings: 0,
		AdminCount:   1,
		UserCount:    1,
		OwnerCount:   0,
	}, stats)

	mine, err := f.rating.MyRatings(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestListUsersFilterAndSort(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	amy := f.register(t, "amy@example.com", models.RoleOwner)
	zed := f.register(t, "zed@example.com", models.RoleUser)

	users, err := f.admin.ListUsers(ctx, repositories.UserFilter{Sort: "email:asc"})
	require.NoError(t, err)
	assert.Equal(t, []uint{amy, zed}, userIDs(users))

	for _, sort := range []string{"password:asc", "name:drop table", "email", "email:sideways"} {
		users, err = f.admin.ListUsers(ctx, repositories.UserFilter{Sort: sort})
		require.NoError(t, err, sort)
		assert.Equal(t, []uint{zed, amy}, userIDs(users), sort)
	}

	users, err = f.admin.ListUsers(ctx, repositories.UserFilter{Role: models.RoleUser})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "zed@example.com", users[0].Email)

	// LIKE wildcards in a filter match literally.
	users, err = f.admin.ListUsers(ctx, repositories.UserFilter{Email: "%"})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestGetUserNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.admin.GetUser(context.Background(), 42)
	assert.True(t, errors.Is(err, services.ErrUserNotFound))
}

func userIDs(users []models.User) []uint {
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}
