package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"homebite/internal/auth"
	"homebite/internal/client"
	"homebite/internal/model"
	"homebite/internal/sample"
	"homebite/internal/service"
	"homebite/internal/session"
	"homebite/internal/viewmodel"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAPI_Integration(t *testing.T) {
	srv := SetupTestServer(t)
	ctx := context.Background()

	t.Run("Login persists the token and Me returns the profile", func(t *testing.T) {
		store := auth.NewMemoryStore()
		c := NewTestClient(t, srv, store)

		user, err := c.Login(ctx, "ava@uni.edu", SeedPassword)
		require.NoError(t, err)
		assert.Equal(t, sample.UserID, user.ID)

		token, err := store.Get(ctx, auth.TokenKey)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		me, err := c.Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ava@uni.edu", me.Email)
	})

	t.Run("Rejected login leaves no token", func(t *testing.T) {
		store := auth.NewMemoryStore()
		c := NewTestClient(t, srv, store)

		_, err := c.Login(ctx, "ava@uni.edu", "wrong")
		assert.ErrorIs(t, err, client.ErrUnauthorized)

		_, err = store.Get(ctx, auth.TokenKey)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("Authorized calls without a token fail before sending", func(t *testing.T) {
		c := NewTestClient(t, srv, auth.NewMemoryStore())

		_, err := c.ListOrders(ctx, client.AsBuyer)
		assert.ErrorIs(t, err, client.ErrUnauthorized)
	})

	t.Run("Dish filters", func(t *testing.T) {
		c := NewTestClient(t, srv, auth.NewMemoryStore())
		campus := service.SampleCampusID

		all, err := c.ListDishes(ctx, client.DishQuery{CampusID: &campus})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		byText, err := c.ListDishes(ctx, client.DishQuery{Query: "TOFU"})
		require.NoError(t, err)
		require.Len(t, byText, 1)
		assert.Equal(t, sample.BasilTofuID, byText[0].ID)
		require.NotNil(t, byText[0].AvgRating)
		assert.InDelta(t, 4.5, *byText[0].AvgRating, 0.001)

		byTags, err := c.ListDishes(ctx, client.DishQuery{Tags: []string{"italian", "share"}})
		require.NoError(t, err)
		assert.Len(t, byTags, 2)
	})

	t.Run("Order and rating round trip", func(t *testing.T) {
		c := NewTestClient(t, srv, auth.NewMemoryStore())
		_, err := c.Signup(ctx, model.SignupRequest{Email: "buyer@uni.edu", Password: "secret", Role: "customer"})
		require.NoError(t, err)

		pickup := model.NewTimestamp(time.Now().Add(2 * time.Hour))
		order, err := c.CreateOrder(ctx, model.OrderCreateRequest{
			Items:           []model.OrderItemIn{{DishID: sample.PomodoroID, Quantity: 2}},
			ScheduledPickup: &pickup,
			Currency:        model.DefaultCurrency,
		})
		require.NoError(t, err)
		assert.Equal(t, 17.0, order.Total)

		orders, err := c.ListOrders(ctx, client.AsBuyer)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, order.ID, orders[0].ID)

		_, err = c.AddRating(ctx, model.RatingCreateRequest{DishID: sample.PomodoroID, Score: 4})
		require.NoError(t, err)

		_, err = c.AddRating(ctx, model.RatingCreateRequest{DishID: sample.PomodoroID, Score: 5})
		require.ErrorIs(t, err, client.ErrServer)
		var apiErr *client.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Equal(t, "Already rated", apiErr.Message)

		ratings, err := c.ListRatings(ctx, sample.PomodoroID)
		require.NoError(t, err)
		assert.Len(t, ratings, 1)
	})

	t.Run("Unknown dish is a 404", func(t *testing.T) {
		c := NewTestClient(t, srv, auth.NewMemoryStore())
		_, err := c.Login(ctx, "ava@uni.edu", SeedPassword)
		require.NoError(t, err)

		_, err = c.CreateOrder(ctx, model.OrderCreateRequest{
			Items: []model.OrderItemIn{{DishID: service.SampleCampusID, Quantity: 1}},
		})
		var apiErr *client.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 404, apiErr.StatusCode)
	})
}

func TestSessionAndViewModels_Integration(t *testing.T) {
	srv := SetupTestServer(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	c := NewTestClient(t, srv, auth.NewMemoryStore())
	sess := session.New(c, c.Session(), logger)

	sess.SetForm(session.Form{Email: "ava@uni.edu", Password: SeedPassword, University: "Texas A&M"})
	require.NoError(t, sess.Login(ctx))
	assert.Equal(t, session.RouteRoleSelection, sess.Route())
	require.NoError(t, sess.SetRoles([]model.UserRole{model.RoleCustomer, model.RoleCook}))
	assert.Equal(t, session.RouteMain, sess.Route())

	user, ok := sess.User()
	require.True(t, ok)

	finder := viewmodel.NewFinder(c, nil, logger)
	dishes := finder.LoadFromAPI(ctx)
	require.NoError(t, dishes.Err)
	assert.Equal(t, viewmodel.SourceAPI, dishes.Source)
	assert.Len(t, dishes.Data, 3)

	kitchen := viewmodel.NewKitchen(c, nil, logger)
	mine := kitchen.LoadFromAPI(ctx, &user)
	require.NoError(t, mine.Err)
	require.Len(t, mine.Data, 1)
	assert.Equal(t, sample.BasilTofuID, mine.Data[0].ID)

	kitchen.SetTitle("Mango Sticky Rice")
	kitchen.SetDescription("Coconut rice with ripe mango")
	kitchen.SetPriceText("5")
	created, err := kitchen.SaveDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, created.CookID)
	assert.Len(t, kitchen.MyDishes(), 2)

	orders := viewmodel.NewOrders(c, nil, time.Now, logger)
	booked, err := orders.Book(ctx, created, time.Now().Add(time.Hour), "")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, booked.Status)

	loaded := orders.LoadFromAPI(ctx)
	require.NoError(t, loaded.Err)
	assert.Len(t, loaded.Data.Upcoming, 2)
	assert.Len(t, loaded.Data.Past, 1)
	assert.Len(t, loaded.Data.CookBookings, 2)

	profile := viewmodel.NewProfile(c, nil, logger)
	ratings := profile.LoadFromAPI(ctx, mine.Data[0])
	require.NoError(t, ratings.Err)
	avg, ok := profile.AverageStars()
	require.True(t, ok)
	assert.InDelta(t, 4.5, avg, 0.001)

	require.NoError(t, sess.Logout(ctx))
	assert.Equal(t, session.RouteOnboarding, sess.Route())
	_, err = c.Me(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}
