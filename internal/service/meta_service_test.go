package service

import (
	"context"
	"testing"

	"homebite/internal/model"
	"homebite/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetaService(t *testing.T) {
	ctx := context.Background()

	mockDishes := new(MockDishRepository)
	mockDishes.On("Tags", ctx).Return([]string{"spicy", "thai"}, nil)

	svc := NewMetaService(repository.NewCampusRepository(DefaultCampuses()), mockDishes, zerolog.Nop())

	campuses, err := svc.Campuses(ctx)
	require.NoError(t, err)
	require.Len(t, campuses, 2)
	assert.Equal(t, "Blinn College", campuses[0].Name)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"spicy", "thai"}, tags)

	reply, err := svc.Chat(ctx, "suggest tags for tofu")
	require.NoError(t, err)
	assert.Equal(t, "AI agent is not configured yet. You said: suggest tags for tofu", reply.Reply)

	ack, err := svc.HireChef(ctx, uuid.New(), &model.HireChefRequest{Title: "Leftover rice", Pantry: []string{"rice", "egg"}})
	require.NoError(t, err)
	assert.True(t, ack.OK)

	_, err = svc.HireChef(ctx, uuid.New(), nil)
	assert.Error(t, err)
}
