// Package session tracks the signed-in user and the app's coarse routing
// stage: onboarding, role selection, then the main experience.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"homebite/internal/auth"
	"homebite/internal/client"
	"homebite/internal/model"
	"homebite/internal/observe"

	"github.com/rs/zerolog"
)

// Route is the stage the app is in.
type Route string

const (
	RouteOnboarding    Route = "onboarding"
	RouteRoleSelection Route = "roleSelection"
	RouteMain          Route = "main"
)

// Fallbacks applied when the onboarding form leaves a field blank.
const (
	DefaultName       = "Student"
	DefaultUniversity = "Your University"
)

var (
	// ErrLoginRejected means the server refused the credentials. A wrong
	// password and an unknown account look the same; callers must call
	// Signup explicitly to create an account.
	ErrLoginRejected = errors.New("login rejected")

	// ErrNoRolesSelected is returned when committing an empty role set.
	ErrNoRolesSelected = errors.New("select at least one role")

	// ErrInvalidRole is returned for a role outside the known set.
	ErrInvalidRole = errors.New("unknown role")

	// ErrMissingCredentials is returned when email or password is blank.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrNotSignedIn is returned by operations that need a signed-in user.
	ErrNotSignedIn = errors.New("not signed in")
)

// Authenticator is the part of the API client the session drives.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*model.UserDTO, error)
	Signup(ctx context.Context, req model.SignupRequest) (*model.UserDTO, error)
	Me(ctx context.Context) (*model.UserDTO, error)
}

// Form holds the onboarding form fields.
type Form struct {
	Name       string
	Email      string
	Password   string
	University string
	Dietary    []string
	Cuisines   []string
}

// State is a snapshot of the session.
type State struct {
	User          *model.User
	Authenticated bool
	SelectedRoles []model.UserRole
	Route         Route
	Form          Form
}

// Session is the app session state machine. It is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	api      Authenticator
	creds    *auth.Session
	state    State
	notifier observe.Notifier
	logger   zerolog.Logger
}

// New creates a session in the onboarding stage. creds is cleared on
// logout; it may be nil when the Authenticator keeps no token.
func New(api Authenticator, creds *auth.Session, logger zerolog.Logger) *Session {
	return &Session{
		api:   api,
		creds: creds,
		state: State{
			Route:         RouteOnboarding,
			SelectedRoles: []model.UserRole{},
			Form:          emptyForm(),
		},
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Route returns the current stage.
func (s *Session) Route() Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Route
}

// User returns the signed-in user, if any.
func (s *Session) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return model.User{}, false
	}
	return cloneUser(*s.state.User), true
}

// Subscribe returns a channel signalled on every state change.
func (s *Session) Subscribe() (<-chan struct{}, func()) {
	return s.notifier.Subscribe()
}

// SetForm replaces the onboarding form fields.
func (s *Session) SetForm(f Form) {
	s.mu.Lock()
	s.state.Form = f.clone()
	s.mu.Unlock()
	s.notifier.Notify()
}

// Login signs in with the form's email and password and moves to role
// selection. A rejection surfaces as ErrLoginRejected.
func (s *Session) Login(ctx context.Context) error {
	form := s.State().Form
	if strings.TrimSpace(form.Email) == "" || form.Password == "" {
		return ErrMissingCredentials
	}

	dto, err := s.api.Login(ctx, strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			s.logger.Info().Str("email", form.Email).Msg("login rejected")
			return fmt.Errorf("%w: %w", ErrLoginRejected, err)
		}
		s.logger.Error().Err(err).Msg("login failed")
		return fmt.Errorf("failed to log in: %w", err)
	}

	s.signedIn(*dto, form)
	return nil
}

// LoginOrSignup logs in with the form credentials. It never creates an
// account on its own: a rejected login returns ErrLoginRejected and the
// caller decides whether to call Signup.
func (s *Session) LoginOrSignup(ctx context.Context) error {
	return s.Login(ctx)
}

// Signup creates an account from the form and moves to role selection.
func (s *Session) Signup(ctx context.Context) error {
	form := s.State().Form
	if strings.TrimSpace(form.Email) == "" || form.Password == "" {
		return ErrMissingCredentials
	}

	req := model.SignupRequest{
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
		Role:     model.WireRole(model.RoleCustomer),
	}
	if name := strings.TrimSpace(form.Name); name != "" {
		req.FullName = &name
	}

	dto, err := s.api.Signup(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Msg("signup failed")
		return fmt.Errorf("failed to sign up: %w", err)
	}

	s.signedIn(*dto, form)
	return nil
}

// Restore resumes a session from a persisted token. It reports whether a
// user was restored; a rejected token is discarded.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	if s.creds == nil || !s.creds.IsAuthenticated(ctx) {
		return false, nil
	}

	dto, err := s.api.Me(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		s.logger.Info().Msg("stored token rejected")
		if cerr := s.creds.Close(ctx); cerr != nil {
			return false, cerr
		}
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to restore session: %w", err)
	}

	user := model.UserFromDTO(*dto)
	s.mu.Lock()
	s.state.User = &user
	s.state.Authenticated = true
	s.state.SelectedRoles = append([]model.UserRole{}, user.Roles...)
	if len(user.Roles) > 0 {
		s.state.Route = RouteMain
	} else {
		s.state.Route = RouteRoleSelection
	}
	s.mu.Unlock()
	s.notifier.Notify()

	s.logger.Info().Str("user_id", user.ID.String()).Msg("session restored")
	return true, nil
}

// SetRoles commits the role selection and moves to the main stage. An
// empty selection returns ErrNoRolesSelected and leaves the route as is.
func (s *Session) SetRoles(roles []model.UserRole) error {
	if len(roles) == 0 {
		return ErrNoRolesSelected
	}
	selected := make([]model.UserRole, 0, len(roles))
	for _, r := range roles {
		if !r.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidRole, r)
		}
		if !containsRole(selected, r) {
			selected = append(selected, r)
		}
	}

	s.mu.Lock()
	if s.state.User == nil {
		s.mu.Unlock()
		return ErrNotSignedIn
	}
	s.state.SelectedRoles = selected
	user := cloneUser(*s.state.User)
	user.Roles = append([]model.UserRole{}, selected...)
	s.state.User = &user
	s.state.Route = RouteMain
	s.mu.Unlock()
	s.notifier.Notify()

	s.logger.Info().Int("roles", len(selected)).Msg("roles selected")
	return nil
}

// Logout clears the user, roles, form fields and persisted token and
// returns to onboarding. In-memory state is cleared even when deleting the
// token fails.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{
		Route:         RouteOnboarding,
		SelectedRoles: []model.UserRole{},
		Form:          emptyForm(),
	}
	s.mu.Unlock()
	s.notifier.Notify()

	if s.creds != nil {
		if err := s.creds.Close(ctx); err != nil {
			s.logger.Error().Err(err).Msg("failed to clear credentials")
			return err
		}
	}
	s.logger.Info().Msg("logged out")
	return nil
}

// signedIn records the authenticated user, filling profile gaps from the
// form, and moves to role selection.
func (s *Session) signedIn(dto model.UserDTO, form Form) {
	user := model.UserFromDTO(dto)
	if user.Name == "" {
		user.Name = strings.TrimSpace(form.Name)
	}
	if user.Name == "" {
		user.Name = DefaultName
	}
	user.University = strings.TrimSpace(form.University)
	if user.University == "" {
		user.University = DefaultUniversity
	}
	user.DietaryRestrictions = append([]string{}, form.Dietary...)
	user.CuisinePreferences = append([]string{}, form.Cuisines...)

	s.mu.Lock()
	s.state.User = &user
	s.state.Authenticated = true
	s.state.Route = RouteRoleSelection
	s.mu.Unlock()
	s.notifier.Notify()

	s.logger.Info().Str("user_id", user.ID.String()).Msg("signed in")
}

func emptyForm() Form {
	return Form{Dietary: []string{}, Cuisines: []string{}}
}

func (f Form) clone() Form {
	f.Dietary = append([]string{}, f.Dietary...)
	f.Cuisines = append([]string{}, f.Cuisines...)
	return f
}

func (st State) clone() State {
	out := st
	out.Form = st.Form.clone()
	out.SelectedRoles = append([]model.UserRole{}, st.SelectedRoles...)
	if st.User != nil {
		u := cloneUser(*st.User)
		out.User = &u
	}
	return out
}

func cloneUser(u model.User) model.User {
	u.Roles = append([]model.UserRole{}, u.Roles...)
	u.DietaryRestrictions = append([]string{}, u.DietaryRestrictions...)
	u.CuisinePreferences = append([]string{}, u.CuisinePreferences...)
	return u
}

func containsRole(roles []model.UserRole, r model.UserRole) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}
