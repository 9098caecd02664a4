package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"homebite/internal/client"
	"homebite/internal/model"
	"homebite/internal/sample"
	"homebite/internal/session"
	"homebite/internal/viewmodel"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// app wires the session and view-models to one API client.
type app struct {
	api     *client.Client
	session *session.Session
	finder  *viewmodel.Finder
	kitchen *viewmodel.Kitchen
	orders  *viewmodel.Orders
	profile *viewmodel.Profile
	out     io.Writer
	logger  zerolog.Logger
}

type command struct {
	usage string
	run   func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"signup":       {"signup -email E -password P [-name N] [-university U]", (*app).signup},
	"login":        {"login -email E -password P", (*app).login},
	"logout":       {"logout", (*app).logout},
	"whoami":       {"whoami", (*app).whoami},
	"roles":        {"roles [-set Customer,Cook,Seller]", (*app).roles},
	"dishes":       {"dishes [-q TEXT] [-cuisine C,...] [-dietary D,...]", (*app).dishes},
	"nearby":       {"nearby [-km N] [-lat LAT -lon LON]", (*app).nearby},
	"publish":      {"publish -title T -description D [-price P | -barter] [-cuisine C] [-tags a,b] [-ingredients a,b] [-suggest]", (*app).publish},
	"orders":       {"orders", (*app).listOrders},
	"book":         {"book -dish ID [-at RFC3339 | -in DURATION] [-notes TEXT]", (*app).book},
	"ratings":      {"ratings -dish ID", (*app).ratings},
	"rate":         {"rate -dish ID -stars N [-comment TEXT]", (*app).rate},
	"campuses":     {"campuses", (*app).campuses},
	"tags":         {"tags", (*app).tags},
	"chat":         {"chat PROMPT...", (*app).chat},
	"hire-chef":    {"hire-chef -title T -pantry a,b [-tags a,b]", (*app).hireChef},
	"suggest-tags": {"suggest-tags -title T [-description D] [-ingredients a,b]", (*app).suggestTags},
}

func newApp(api *client.Client, catalog *sample.Catalog, now viewmodel.Clock, out io.Writer, logger zerolog.Logger) *app {
	return &app{
		api:     api,
		session: session.New(api, api.Session(), logger),
		finder:  viewmodel.NewFinder(api, catalog, logger),
		kitchen: viewmodel.NewKitchen(api, catalog, logger),
		orders:  viewmodel.NewOrders(api, catalog, now, logger),
		profile: viewmodel.NewProfile(api, catalog, logger),
		out:     out,
		logger:  logger,
	}
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: homebite <command> [flags]")
	fmt.Fprintln(w)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}

func (a *app) dispatch(ctx context.Context, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		printUsage(a.out)
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd.run(a, ctx, args)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w (see 'homebite help')", fs.Name(), err)
	}
	return nil
}

func (a *app) signup(ctx context.Context, args []string) error {
	fs := newFlagSet("signup")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "display name")
	university := fs.String("university", "", "university")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a.session.SetForm(session.Form{Name: *name, Email: *email, Password: *password, University: *university})
	if err := a.session.Signup(ctx); err != nil {
		return err
	}
	return a.printSignedIn()
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a.session.SetForm(session.Form{Email: *email, Password: *password})
	err := a.session.LoginOrSignup(ctx)
	if errors.Is(err, session.ErrLoginRejected) {
		return fmt.Errorf("%w; run 'homebite signup' to create an account", err)
	}
	if err != nil {
		return err
	}
	return a.printSignedIn()
}

func (a *app) printSignedIn() error {
	user, ok := a.session.User()
	if !ok {
		return session.ErrNotSignedIn
	}
	fmt.Fprintf(a.out, "Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) logout(ctx context.Context, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// restore resumes the persisted session and returns the signed-in user.
func (a *app) restore(ctx context.Context) (model.User, error) {
	ok, err := a.session.Restore(ctx)
	if err != nil {
		return model.User{}, err
	}
	if !ok {
		return model.User{}, fmt.Errorf("%w; run 'homebite login' first", session.ErrNotSignedIn)
	}
	user, _ := a.session.User()
	return user, nil
}

func (a *app) whoami(ctx context.Context, _ []string) error {
	user, err := a.restore(ctx)
	if err != nil {
		return err
	}

	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, string(r))
	}
	fmt.Fprintf(a.out, "%s <%s>\nid: %s\nroles: %s\n", user.Name, user.Email, user.ID, strings.Join(roles, ", "))
	return nil
}

// roles shows the session's roles and stage, or commits a new selection
// when -set is given.
func (a *app) roles(ctx context.Context, args []string) error {
	fs := newFlagSet("roles")
	set := fs.String("set", "", "comma-separated roles to select")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if _, err := a.restore(ctx); err != nil {
		return err
	}

	selecting := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "set" {
			selecting = true
		}
	})
	if selecting {
		selected := make([]model.UserRole, 0)
		for _, name := range splitList(*set) {
			selected = append(selected, parseRole(name))
		}
		if err := a.session.SetRoles(selected); err != nil {
			return err
		}
	}

	st := a.session.State()
	names := make([]string, 0, len(st.SelectedRoles))
	for _, r := range st.SelectedRoles {
		names = append(names, string(r))
	}
	if len(names) == 0 {
		names = append(names, "none")
	}
	fmt.Fprintf(a.out, "Roles: %s\nStage: %s\n", strings.Join(names, ", "), st.Route)
	if !selecting {
		available := make([]string, 0, len(model.AllRoles))
		for _, r := range model.AllRoles {
			available = append(available, string(r))
		}
		fmt.Fprintf(a.out, "Available: %s\n", strings.Join(available, ", "))
	}
	return nil
}

// parseRole matches name against the known roles ignoring case. Unknown
// names are returned as given.
func parseRole(name string) model.UserRole {
	for _, r := range model.AllRoles {
		if strings.EqualFold(string(r), name) {
			return r
		}
	}
	return model.UserRole(name)
}

func (a *app) warnStale(err error) {
	if err != nil {
		fmt.Fprintf(a.out, "warning: API unavailable, showing sample data (%v)\n", err)
	}
}

func (a *app) dishes(ctx context.Context, args []string) error {
	fs := newFlagSet("dishes")
	query := fs.String("q", "", "text to match in title or description")
	cuisines := fs.String("cuisine", "", "comma-separated cuisines")
	dietary := fs.String("dietary", "", "comma-separated dietary labels")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	res := a.finder.LoadFromAPI(ctx)
	if res.Stale() {
		a.warnStale(res.Err)
	}
	a.finder.SetSearchText(*query)
	for _, c := range splitList(*cuisines) {
		a.finder.ToggleCuisine(c)
	}
	for _, d := range splitList(*dietary) {
		a.finder.ToggleDietary(d)
	}

	a.printDishes(a.finder.FilteredDishes(), false)
	return nil
}

func (a *app) nearby(ctx context.Context, args []string) error {
	fs := newFlagSet("nearby")
	km := fs.Float64("km", viewmodel.DefaultProximityKm, "search radius in kilometres")
	lat := fs.Float64("lat", sample.Origin.Latitude, "origin latitude")
	lon := fs.Float64("lon", sample.Origin.Longitude, "origin longitude")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	res := a.finder.LoadFromAPI(ctx)
	if res.Stale() {
		a.warnStale(res.Err)
	}
	a.finder.SetProximityKm(*km)
	a.finder.SetOrigin(model.Coordinate{Latitude: *lat, Longitude: *lon})

	a.printDishes(a.finder.NearbyDishes(), true)
	return nil
}

func (a *app) printDishes(dishes []model.Dish, withDistance bool) {
	if len(dishes) == 0 {
		fmt.Fprintln(a.out, "No dishes found")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	if withDistance {
		fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tCOOK\tDISTANCE")
	} else {
		fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tCOOK\tCUISINE")
	}
	for _, d := range dishes {
		last := d.Cuisine
		if withDistance && d.DistanceMeters != nil {
			last = fmt.Sprintf("%.1f km", *d.DistanceMeters/1000)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.Title, d.DisplayPrice(), d.CookName, last)
	}
	_ = tw.Flush()
}

// findDish looks id up in the current listing.
func (a *app) findDish(ctx context.Context, raw string) (model.Dish, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return model.Dish{}, fmt.Errorf("invalid dish id %q: %w", raw, err)
	}

	res := a.finder.LoadFromAPI(ctx)
	if res.Stale() {
		a.warnStale(res.Err)
	}
	for _, d := range res.Data {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Dish{}, fmt.Errorf("%w: %s", model.ErrDishNotFound, id)
}

func (a *app) publish(ctx context.Context, args []string) error {
	fs := newFlagSet("publish")
	title := fs.String("title", "", "dish title")
	description := fs.String("description", "", "dish description")
	price := fs.String("price", "", "price, e.g. 8.50")
	barter := fs.Bool("barter", false, "offer the dish for a share instead of money")
	cuisine := fs.String("cuisine", "", "cuisine")
	tags := fs.String("tags", "", "comma-separated tags")
	ingredients := fs.String("ingredients", "", "comma-separated ingredients")
	suggest := fs.Bool("suggest", false, "ask the assistant for extra tags")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	user, err := a.restore(ctx)
	if err != nil {
		return err
	}
	res := a.kitchen.LoadFromAPI(ctx, &user)
	if res.Stale() {
		a.warnStale(res.Err)
	}

	a.kitchen.SetTitle(*title)
	a.kitchen.SetDescription(*description)
	a.kitchen.SetCuisine(*cuisine)
	a.kitchen.SetBarter(*barter)
	a.kitchen.SetPriceText(*price)
	for _, t := range splitList(*tags) {
		a.kitchen.AddTag(t)
	}
	for _, i := range splitList(*ingredients) {
		a.kitchen.AddIngredient(i)
	}
	if *suggest {
		added, err := a.kitchen.SuggestTags(ctx)
		if err != nil {
			a.logger.Warn().Err(err).Msg("tag suggestion failed")
		} else if len(added) > 0 {
			fmt.Fprintf(a.out, "Suggested tags: %s\n", strings.Join(added, ", "))
		}
	}

	dish, err := a.kitchen.SaveDraft(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Published %q (%s) at %s\n", dish.Title, dish.ID, dish.DisplayPrice())
	fmt.Fprintf(a.out, "You now list %d dish(es)\n", len(a.kitchen.MyDishes()))
	return nil
}

func (a *app) suggestTags(ctx context.Context, args []string) error {
	fs := newFlagSet("suggest-tags")
	title := fs.String("title", "", "dish title")
	description := fs.String("description", "", "dish description")
	ingredients := fs.String("ingredients", "", "comma-separated ingredients")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	a.kitchen.SetTitle(*title)
	a.kitchen.SetDescription(*description)
	for _, i := range splitList(*ingredients) {
		a.kitchen.AddIngredient(i)
	}

	added, err := a.kitchen.SuggestTags(ctx)
	if err != nil {
		return err
	}
	if len(added) == 0 {
		fmt.Fprintln(a.out, "No tags suggested")
		return nil
	}
	fmt.Fprintln(a.out, strings.Join(added, ", "))
	return nil
}

func (a *app) listOrders(ctx context.Context, _ []string) error {
	if _, err := a.restore(ctx); err != nil {
		return err
	}

	res := a.orders.LoadFromAPI(ctx)
	switch {
	case res.Stale():
		a.warnStale(res.Err)
	case res.Err != nil:
		fmt.Fprintf(a.out, "warning: cook bookings unavailable (%v)\n", res.Err)
	}

	a.printOrders("Upcoming", res.Data.Upcoming)
	a.printOrders("Past", res.Data.Past)
	a.printOrders("Bookings of my dishes", res.Data.CookBookings)
	return nil
}

func (a *app) printOrders(title string, orders []model.Order) {
	fmt.Fprintf(a.out, "%s (%d)\n", title, len(orders))
	if len(orders) == 0 {
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, o := range orders {
		total := "-"
		if o.TotalPrice != nil {
			total = fmt.Sprintf("$%.2f", *o.TotalPrice)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", o.ID, o.ScheduledAt.Local().Format(time.RFC1123), o.Status, total)
	}
	_ = tw.Flush()
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := newFlagSet("book")
	dishID := fs.String("dish", "", "dish id")
	at := fs.String("at", "", "pickup time (RFC 3339)")
	in := fs.Duration("in", time.Hour, "pickup delay from now when -at is not set")
	notes := fs.String("notes", "", "pickup notes")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if _, err := a.restore(ctx); err != nil {
		return err
	}
	dish, err := a.findDish(ctx, *dishID)
	if err != nil {
		return err
	}

	pickup := time.Now().Add(*in)
	if *at != "" {
		pickup, err = time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("invalid pickup time %q: %w", *at, err)
		}
	}

	order, err := a.orders.Book(ctx, dish, pickup, *notes)
	if err != nil {
		return err
	}
	total := "-"
	if order.TotalPrice != nil {
		total = fmt.Sprintf("$%.2f", *order.TotalPrice)
	}
	fmt.Fprintf(a.out, "Booked %q for %s (order %s, %s, total %s)\n",
		dish.Title, order.ScheduledAt.Local().Format(time.RFC1123), order.ID, order.Status, total)
	return nil
}

func (a *app) ratings(ctx context.Context, args []string) error {
	fs := newFlagSet("ratings")
	dishID := fs.String("dish", "", "dish id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	dish, err := a.findDish(ctx, *dishID)
	if err != nil {
		return err
	}
	res := a.profile.LoadFromAPI(ctx, dish)
	if res.Stale() {
		a.warnStale(res.Err)
	}

	if avg, ok := a.profile.AverageStars(); ok {
		fmt.Fprintf(a.out, "%s: %.1f stars from %d rating(s)\n", dish.Title, avg, len(res.Data))
	} else {
		fmt.Fprintf(a.out, "%s: no ratings yet\n", dish.Title)
	}
	for _, r := range res.Data {
		comment := ""
		if r.Comment != nil {
			comment = *r.Comment
		}
		fmt.Fprintf(a.out, "  %s %s\n", strings.Repeat("*", r.Stars), comment)
	}
	return nil
}

func (a *app) rate(ctx context.Context, args []string) error {
	fs := newFlagSet("rate")
	dishID := fs.String("dish", "", "dish id")
	stars := fs.Int("stars", 0, "stars from 1 to 5")
	comment := fs.String("comment", "", "optional comment")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if !model.ValidStars(*stars) {
		return model.ErrInvalidStars
	}
	if _, err := a.restore(ctx); err != nil {
		return err
	}
	dish, err := a.findDish(ctx, *dishID)
	if err != nil {
		return err
	}

	rating, err := a.profile.Rate(ctx, dish, *stars, *comment)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Rated %q %d star(s) (rating %s)\n", dish.Title, rating.Stars, rating.ID)
	return nil
}

func (a *app) campuses(ctx context.Context, _ []string) error {
	campuses, err := a.api.ListCampuses(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, c := range campuses {
		addr := ""
		if c.Address != nil {
			addr = *c.Address
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, addr)
	}
	return tw.Flush()
}

func (a *app) tags(ctx context.Context, _ []string) error {
	tags, err := a.api.ListTags(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, strings.Join(tags, ", "))
	return nil
}

func (a *app) chat(ctx context.Context, args []string) error {
	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return errors.New("chat: prompt is required")
	}
	reply, err := a.api.Chat(ctx, prompt)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, reply)
	return nil
}

func (a *app) hireChef(ctx context.Context, args []string) error {
	fs := newFlagSet("hire-chef")
	title := fs.String("title", "", "what you would like cooked")
	pantry := fs.String("pantry", "", "comma-separated pantry items")
	tags := fs.String("tags", "", "comma-separated tags")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if strings.TrimSpace(*title) == "" {
		return errors.New("hire-chef: title is required")
	}
	items := splitList(*pantry)
	if len(items) == 0 {
		return errors.New("hire-chef: at least one pantry item is required")
	}
	if _, err := a.restore(ctx); err != nil {
		return err
	}

	ok, err := a.api.RequestChef(ctx, model.HireChefRequest{
		Title:        strings.TrimSpace(*title),
		Tags:         splitList(*tags),
		Pantry:       items,
		ImagesBase64: []string{},
	})
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("hire-chef: request was not accepted")
	}
	fmt.Fprintf(a.out, "Request sent: %q with %d pantry item(s)\n", strings.TrimSpace(*title), len(items))
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
