package viewmodel

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"homebite/internal/client"
	"homebite/internal/model"
	"homebite/internal/observe"
	"homebite/internal/sample"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxSuggestedTagLen drops assistant replies that are sentences, not tags.
const maxSuggestedTagLen = 24

// listMarker matches bullets, hashes and "1." numbering before a tag.
var listMarker = regexp.MustCompile(`^(?:(?:[-*#]+|\d+[.)])\s*)+`)

// KitchenAPI is the part of the API client the kitchen uses.
type KitchenAPI interface {
	DishLister
	CreateDish(ctx context.Context, req model.DishCreateRequest) (*model.DishDTO, error)
	Chat(ctx context.Context, prompt string) (string, error)
}

// Kitchen backs the cook's screen: their listed dishes and the add-dish
// draft.
type Kitchen struct {
	mu       sync.RWMutex
	api      KitchenAPI
	catalog  *sample.Catalog
	myDishes []model.Dish
	draft    model.Dish
	priceTxt string
	notifier observe.Notifier
	logger   zerolog.Logger
}

// NewKitchen creates a kitchen with an empty draft.
func NewKitchen(api KitchenAPI, catalog *sample.Catalog, logger zerolog.Logger) *Kitchen {
	if catalog == nil {
		catalog = sample.Default(time.Now())
	}
	return &Kitchen{
		api:      api,
		catalog:  catalog,
		myDishes: []model.Dish{},
		draft:    blankDish(uuid.Nil, ""),
		logger:   logger.With().Str("viewmodel", "kitchen").Logger(),
	}
}

// Subscribe returns a channel signalled on every state change.
func (k *Kitchen) Subscribe() (<-chan struct{}, func()) {
	return k.notifier.Subscribe()
}

// LoadMock shows the sample dishes and assigns the draft to user.
func (k *Kitchen) LoadMock(user *model.User) {
	k.update(func() {
		k.myDishes = append([]model.Dish{}, k.catalog.Dishes...)
		k.assignCook(user)
	})
}

// LoadFromAPI shows the dishes cooked by user. On failure the sample
// dishes are shown and the error is returned in the Result.
func (k *Kitchen) LoadFromAPI(ctx context.Context, user *model.User) Result[[]model.Dish] {
	dtos, err := k.api.ListDishes(ctx, client.DishQuery{})
	if err != nil {
		k.logger.Warn().Err(err).Msg("failed to load kitchen, showing sample data")
		k.LoadMock(user)
		return Result[[]model.Dish]{Data: k.MyDishes(), Source: SourceSample, Err: err}
	}

	mine := []model.Dish{}
	for _, d := range dtos {
		if user != nil && d.CookID != user.ID {
			continue
		}
		mine = append(mine, model.DishFromDTO(d))
	}
	k.update(func() {
		k.myDishes = mine
		k.assignCook(user)
	})
	return Result[[]model.Dish]{Data: k.MyDishes(), Source: SourceAPI}
}

// MyDishes returns the cook's dishes in insertion order.
func (k *Kitchen) MyDishes() []model.Dish {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return append([]model.Dish{}, k.myDishes...)
}

// Draft returns a copy of the dish being composed.
func (k *Kitchen) Draft() model.Dish {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return cloneDish(k.draft)
}

// PriceText returns the price field as the user typed it, filtered.
func (k *Kitchen) PriceText() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.priceTxt
}

// SetTitle sets the draft title.
func (k *Kitchen) SetTitle(title string) {
	k.update(func() { k.draft.Title = title })
}

// SetDescription sets the draft description.
func (k *Kitchen) SetDescription(desc string) {
	k.update(func() { k.draft.Description = desc })
}

// SetCuisine sets the draft cuisine.
func (k *Kitchen) SetCuisine(cuisine string) {
	k.update(func() { k.draft.Cuisine = strings.TrimSpace(cuisine) })
}

// SetBarter marks the draft as a cook-for-share listing.
func (k *Kitchen) SetBarter(barter bool) {
	k.update(func() { k.draft.Barter = barter })
}

// SetPhotoURL attaches a photo to the draft. An empty url removes it.
func (k *Kitchen) SetPhotoURL(url string) {
	k.update(func() {
		if url == "" {
			k.draft.PhotoURL = nil
			return
		}
		k.draft.PhotoURL = &url
	})
}

// SetCoordinate sets the pickup location of the draft.
func (k *Kitchen) SetCoordinate(c *model.Coordinate) {
	k.update(func() { k.draft.Coordinate = c })
}

// SetPriceText keeps only digits and dots from text and, when the result
// parses, uses it as the draft price. Unparseable or empty text clears it.
func (k *Kitchen) SetPriceText(text string) string {
	filtered := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)

	k.update(func() {
		k.priceTxt = filtered
		k.draft.Price = nil
		if v, err := strconv.ParseFloat(filtered, 64); err == nil {
			k.draft.Price = &v
		}
	})
	return filtered
}

// AddTag appends a trimmed lowercase tag unless it is blank or present.
func (k *Kitchen) AddTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return false
	}
	added := false
	k.update(func() {
		if !containsFold(k.draft.Tags, tag) {
			k.draft.Tags = append(k.draft.Tags, tag)
			added = true
		}
	})
	return added
}

// RemoveTag drops tag from the draft.
func (k *Kitchen) RemoveTag(tag string) {
	k.update(func() { k.draft.Tags = without(k.draft.Tags, tag) })
}

// AddIngredient appends a trimmed ingredient unless it is blank or present.
func (k *Kitchen) AddIngredient(ingredient string) bool {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return false
	}
	added := false
	k.update(func() {
		if !containsFold(k.draft.Ingredients, ingredient) {
			k.draft.Ingredients = append(k.draft.Ingredients, ingredient)
			added = true
		}
	})
	return added
}

// RemoveIngredient drops ingredient from the draft.
func (k *Kitchen) RemoveIngredient(ingredient string) {
	k.update(func() { k.draft.Ingredients = without(k.draft.Ingredients, ingredient) })
}

// ToggleDietary adds or removes a dietary label on the draft.
func (k *Kitchen) ToggleDietary(label string) {
	k.update(func() {
		if containsFold(k.draft.Dietary, label) {
			k.draft.Dietary = without(k.draft.Dietary, label)
			return
		}
		k.draft.Dietary = append(k.draft.Dietary, label)
	})
}

// ValidateDraft checks the draft is publishable: it needs a title, a
// description and either a positive price or barter.
func ValidateDraft(d model.Dish) error {
	if strings.TrimSpace(d.Title) == "" {
		return model.ErrMissingTitle
	}
	if strings.TrimSpace(d.Description) == "" {
		return model.ErrMissingDescription
	}
	if !d.Barter && (d.Price == nil || *d.Price <= 0) {
		return model.ErrInvalidPrice
	}
	return nil
}

// SaveDraft publishes the draft, appends the created dish to MyDishes and
// starts a fresh draft for the same cook. On failure the draft is kept.
func (k *Kitchen) SaveDraft(ctx context.Context) (model.Dish, error) {
	draft := k.Draft()
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)
	if err := ValidateDraft(draft); err != nil {
		return model.Dish{}, err
	}

	dto, err := k.api.CreateDish(ctx, model.DishToCreateRequest(draft))
	if err != nil {
		k.logger.Error().Err(err).Str("title", draft.Title).Msg("failed to publish dish")
		return model.Dish{}, fmt.Errorf("failed to publish dish: %w", err)
	}

	created := model.DishFromDTO(*dto)
	if created.CookName == "" {
		created.CookName = draft.CookName
	}
	if created.Cuisine == "" {
		created.Cuisine = draft.Cuisine
	}
	if created.Coordinate == nil {
		created.Coordinate = draft.Coordinate
	}

	k.update(func() {
		k.myDishes = append(k.myDishes, created)
		k.draft = blankDish(draft.CookID, draft.CookName)
		k.priceTxt = ""
	})
	k.logger.Info().Str("dish_id", created.ID.String()).Msg("dish published")
	return created, nil
}

// SuggestTags asks the assistant for tags describing the draft and merges
// new ones into it. It returns the tags that were added.
func (k *Kitchen) SuggestTags(ctx context.Context) ([]string, error) {
	draft := k.Draft()
	if strings.TrimSpace(draft.Title) == "" {
		return nil, model.ErrMissingTitle
	}

	prompt := fmt.Sprintf(
		"Suggest short lowercase tags for a home-cooked dish. Title: %s. Description: %s. Ingredients: %s. Reply with a comma-separated list only.",
		draft.Title, draft.Description, strings.Join(draft.Ingredients, ", "),
	)
	reply, err := k.api.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest tags: %w", err)
	}

	added := []string{}
	for _, tag := range ParseTags(reply) {
		if k.AddTag(tag) {
			added = append(added, tag)
		}
	}
	return added, nil
}

// ParseTags splits a free-text reply into tags: comma or newline
// separated, trimmed of list markers and '#', lowercased, de-duplicated.
func ParseTags(reply string) []string {
	fields := strings.FieldsFunc(reply, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})

	seen := make(map[string]struct{})
	out := []string{}
	for _, f := range fields {
		tag := listMarker.ReplaceAllString(strings.ToLower(strings.TrimSpace(f)), "")
		tag = strings.TrimRight(strings.TrimSpace(tag), ".")
		if tag == "" || len(tag) > maxSuggestedTagLen {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func (k *Kitchen) assignCook(user *model.User) {
	if user == nil {
		return
	}
	k.draft.CookID = user.ID
	k.draft.CookName = user.Name
}

func (k *Kitchen) update(fn func()) {
	k.mu.Lock()
	fn()
	k.mu.Unlock()
	k.notifier.Notify()
}

func blankDish(cookID uuid.UUID, cookName string) model.Dish {
	return model.Dish{
		ID:          uuid.New(),
		Ingredients: []string{},
		Tags:        []string{},
		Dietary:     []string{},
		CookID:      cookID,
		CookName:    cookName,
	}
}

func cloneDish(d model.Dish) model.Dish {
	d.Ingredients = append([]string{}, d.Ingredients...)
	d.Tags = append([]string{}, d.Tags...)
	d.Dietary = append([]string{}, d.Dietary...)
	return d
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func without(values []string, s string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !strings.EqualFold(v, s) {
			out = append(out, v)
		}
	}
	return out
}
