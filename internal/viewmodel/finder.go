package viewmodel

import (
	"context"
	"strings"
	"sync"
	"time"

	"homebite/internal/client"
	"homebite/internal/model"
	"homebite/internal/observe"
	"homebite/internal/sample"

	"github.com/rs/zerolog"
)

// DefaultProximityKm is the initial search radius.
const DefaultProximityKm = 5.0

// DishLister lists marketplace dishes.
type DishLister interface {
	ListDishes(ctx context.Context, q client.DishQuery) ([]model.DishDTO, error)
}

// Finder backs the dish discovery screen.
type Finder struct {
	mu               sync.RWMutex
	api              DishLister
	catalog          *sample.Catalog
	dishes           []model.Dish
	searchText       string
	selectedCuisines map[string]struct{}
	selectedDietary  map[string]struct{}
	proximityKm      float64
	origin           model.Coordinate
	showMap          bool
	cookMode         bool
	notifier         observe.Notifier
	logger           zerolog.Logger
}

// NewFinder creates a finder centred on the sample origin. catalog is the
// fallback data set.
func NewFinder(api DishLister, catalog *sample.Catalog, logger zerolog.Logger) *Finder {
	if catalog == nil {
		catalog = sample.Default(time.Now())
	}
	return &Finder{
		api:              api,
		catalog:          catalog,
		dishes:           []model.Dish{},
		selectedCuisines: make(map[string]struct{}),
		selectedDietary:  make(map[string]struct{}),
		proximityKm:      DefaultProximityKm,
		origin:           sample.Origin,
		showMap:          true,
		logger:           logger.With().Str("viewmodel", "finder").Logger(),
	}
}

// Subscribe returns a channel signalled on every state change.
func (f *Finder) Subscribe() (<-chan struct{}, func()) {
	return f.notifier.Subscribe()
}

// LoadMock replaces the dishes with the sample catalogue.
func (f *Finder) LoadMock() {
	f.setDishes(f.catalog.Dishes)
}

// LoadFromAPI fetches all dishes. On failure the sample dishes are shown
// and the error is returned in the Result.
func (f *Finder) LoadFromAPI(ctx context.Context) Result[[]model.Dish] {
	dtos, err := f.api.ListDishes(ctx, client.DishQuery{})
	if err != nil {
		f.logger.Warn().Err(err).Msg("failed to load dishes, showing sample data")
		f.LoadMock()
		return Result[[]model.Dish]{Data: f.Dishes(), Source: SourceSample, Err: err}
	}

	dishes := make([]model.Dish, 0, len(dtos))
	for _, d := range dtos {
		dishes = append(dishes, model.DishFromDTO(d))
	}
	f.setDishes(dishes)
	f.logger.Debug().Int("dishes", len(dishes)).Msg("dishes loaded")
	return Result[[]model.Dish]{Data: f.Dishes(), Source: SourceAPI}
}

func (f *Finder) setDishes(dishes []model.Dish) {
	f.mu.Lock()
	f.dishes = append([]model.Dish{}, dishes...)
	f.mu.Unlock()
	f.notifier.Notify()
}

// Dishes returns every loaded dish in insertion order.
func (f *Finder) Dishes() []model.Dish {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]model.Dish{}, f.dishes...)
}

// SetSearchText sets the free-text filter.
func (f *Finder) SetSearchText(text string) {
	f.update(func() { f.searchText = text })
}

// SearchText returns the free-text filter.
func (f *Finder) SearchText() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.searchText
}

// ToggleCuisine adds or removes a cuisine from the filter.
func (f *Finder) ToggleCuisine(cuisine string) {
	f.update(func() { toggle(f.selectedCuisines, cuisine) })
}

// ToggleDietary adds or removes a dietary label from the filter.
func (f *Finder) ToggleDietary(label string) {
	f.update(func() { toggle(f.selectedDietary, label) })
}

// SelectedCuisines returns the cuisine filter, sorted.
func (f *Finder) SelectedCuisines() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return sortedKeys(f.selectedCuisines)
}

// SelectedDietary returns the dietary filter, sorted.
func (f *Finder) SelectedDietary() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return sortedKeys(f.selectedDietary)
}

// ClearFilters resets text, cuisine and dietary filters.
func (f *Finder) ClearFilters() {
	f.update(func() {
		f.searchText = ""
		f.selectedCuisines = make(map[string]struct{})
		f.selectedDietary = make(map[string]struct{})
	})
}

// SetProximityKm sets the nearby radius. Non-positive values are ignored.
func (f *Finder) SetProximityKm(km float64) {
	if km <= 0 {
		return
	}
	f.update(func() { f.proximityKm = km })
}

// ProximityKm returns the nearby radius.
func (f *Finder) ProximityKm() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.proximityKm
}

// SetOrigin moves the point distances are measured from.
func (f *Finder) SetOrigin(c model.Coordinate) {
	f.update(func() { f.origin = c })
}

// SetShowMap toggles between map and list presentation.
func (f *Finder) SetShowMap(show bool) {
	f.update(func() { f.showMap = show })
}

// ShowMap reports whether the map is shown.
func (f *Finder) ShowMap() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.showMap
}

// SetCookMode switches the screen into the cook's perspective.
func (f *Finder) SetCookMode(on bool) {
	f.update(func() { f.cookMode = on })
}

// CookMode reports whether cook mode is on.
func (f *Finder) CookMode() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cookMode
}

// FilteredDishes returns the dishes matching every active filter, in
// insertion order. Text matches title or description case-insensitively;
// a cuisine must be selected; dietary labels need one in common. Inactive
// filters match everything.
func (f *Finder) FilteredDishes() []model.Dish {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filtered()
}

func (f *Finder) filtered() []model.Dish {
	text := strings.ToLower(f.searchText)
	out := make([]model.Dish, 0, len(f.dishes))
	for _, d := range f.dishes {
		if text != "" &&
			!strings.Contains(strings.ToLower(d.Title), text) &&
			!strings.Contains(strings.ToLower(d.Description), text) {
			continue
		}
		if len(f.selectedCuisines) > 0 {
			if _, ok := f.selectedCuisines[d.Cuisine]; !ok {
				continue
			}
		}
		if len(f.selectedDietary) > 0 && !intersects(f.selectedDietary, d.Dietary) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// NearbyDishes returns the filtered dishes within ProximityKm of the
// origin, with DistanceMeters set. Dishes without a coordinate are left out.
func (f *Finder) NearbyDishes() []model.Dish {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := []model.Dish{}
	for _, d := range f.filtered() {
		if d.Coordinate == nil {
			continue
		}
		km := f.origin.DistanceKm(*d.Coordinate)
		if km > f.proximityKm {
			continue
		}
		meters := km * 1000
		d.DistanceMeters = &meters
		out = append(out, d)
	}
	return out
}

// AvailableCuisines lists the distinct cuisines of the loaded dishes.
func (f *Finder) AvailableCuisines() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	set := make(map[string]struct{})
	for _, d := range f.dishes {
		if d.Cuisine != "" {
			set[d.Cuisine] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// AvailableDietary lists the distinct dietary labels of the loaded dishes.
func (f *Finder) AvailableDietary() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	set := make(map[string]struct{})
	for _, d := range f.dishes {
		for _, label := range d.Dietary {
			if label != "" {
				set[label] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

func (f *Finder) update(fn func()) {
	f.mu.Lock()
	fn()
	f.mu.Unlock()
	f.notifier.Notify()
}

func toggle(set map[string]struct{}, key string) {
	if _, ok := set[key]; ok {
		delete(set, key)
		return
	}
	set[key] = struct{}{}
}

func intersects(set map[string]struct{}, values []string) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
