package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pt428/recipes/internal/client/client/clienttest"
	"github.com/pt428/recipes/internal/client/config"
	"github.com/pt428/recipes/internal/client/models"
	"github.com/pt428/recipes/internal/client/navigation"
	"github.com/pt428/recipes/internal/client/router"
)

type memRepo struct {
	mu   sync.Mutex
	rows map[string]models.ReturnState
}

func (r *memRepo) Save(_ context.Context, name string, st models.ReturnState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[name] = st
	return nil
}

func (r *memRepo) Take(_ context.Context, name string) (models.ReturnState, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.rows[name]
	delete(r.rows, name)
	return st, ok, nil
}

func (r *memRepo) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, name)
	return nil
}

type testApp struct {
	*App
	fc     *clienttest.Fake
	tokens *clienttest.Tokens
	out    *bytes.Buffer
}

func newTestApp(t *testing.T, fc *clienttest.Fake, token, input string) *testApp {
	t.Helper()
	// Password prompts read plain lines from the input.
	stubTerminal(t, false, "", nil)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.AppBaseURL = "https://app.test"

	out := &bytes.Buffer{}
	tokens := clienttest.NewTokens(token)
	a := newApp(deps{
		config:  cfg,
		client:  fc,
		tokens:  tokens,
		history: navigation.NewHistory(&memRepo{rows: map[string]models.ReturnState{}}, nil),
		nav:     router.NewNavigator(router.New()),
		in:      strings.NewReader(input),
		out:     out,
	})
	return &testApp{App: a, fc: fc, tokens: tokens, out: out}
}

func page(total int, recipes ...models.Recipe) *models.RecipePage {
	return &models.RecipePage{Recipes: recipes, TotalPages: total, Total: len(recipes)}
}

func TestRestoreSession(t *testing.T) {
	fc := &clienttest.Fake{
		CurrentUserFunc: func(context.Context) (*models.User, error) {
			return &models.User{ID: 3, Name: "Ann"}, nil
		},
	}
	a := newTestApp(t, fc, "tok", "")

	a.restoreSession(context.Background())

	require.NotNil(t, a.user)
	assert.Equal(t, "Ann", a.user.Name)
	assert.True(t, a.isLoggedIn())
}

func TestRestoreSession_NoToken(t *testing.T) {
	fc := &clienttest.Fake{}
	a := newTestApp(t, fc, "", "")

	a.restoreSession(context.Background())

	assert.False(t, a.isLoggedIn())
	assert.Zero(t, fc.Count("CurrentUser()"))
}

func TestRun_GreetsAndExits(t *testing.T) {
	fc := &clienttest.Fake{
		CurrentUserFunc: func(context.Context) (*models.User, error) {
			return &models.User{ID: 3, Name: "Ann", Email: "ann@example.com"}, nil
		},
	}
	a := newTestApp(t, fc, "tok", "exit\n")
	closed := false
	a.closers = append(a.closers, func() error { closed = true; return nil })

	a.Run(context.Background())

	out := a.out.String()
	assert.Contains(t, out, "Welcome to the recipes CLI")
	assert.Contains(t, out, "Logged in as Ann <ann@example.com>")
	assert.Contains(t, out, "Bye!")
	assert.Equal(t, 1, fc.Count("Tags()"))
	assert.Equal(t, 1, fc.Count("Categories()"))
	assert.True(t, closed)
}
