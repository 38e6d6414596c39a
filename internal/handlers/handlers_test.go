package handlers_test

import (
	"math/rand"
	"net/http"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/suaudpierre/deckpick/internal/auth"
	"github.com/suaudpierre/deckpick/internal/handlers"
	"github.com/suaudpierre/deckpick/internal/logger"
	"github.com/suaudpierre/deckpick/internal/repository"
	"github.com/suaudpierre/deckpick/internal/roller"
	"github.com/suaudpierre/deckpick/internal/services"
	"github.com/suaudpierre/deckpick/internal/testutil"
	"github.com/suaudpierre/deckpick/internal/websocket"
)

func createTestTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte(`<html><body>Index</body></html>`)},
		"login.html": &fstest.MapFile{Data: []byte(`<html><body>Login</body></html>`)},
	}
}

// testSetup creates all the dependencies needed for testing handlers
type testSetup struct {
	repo       *repository.Repository
	handlers   *handlers.Handlers
	router     chi.Router
	draw       *services.DrawService
	authCookie *http.Cookie
}

// newTestSetup creates a new test setup with in-memory repository and a
// fast selector so draws finish in milliseconds
func newTestSetup(t *testing.T) *testSetup {
	t.Helper()

	repo := testutil.NewTestRepository(t)
	log := logger.New()

	cardService := services.NewCardService(log, repo)
	settingsService := services.NewSettingsService(log, repo)
	drawService := services.NewDrawService(log, repo)

	cfg := roller.Config{
		BaseTickDelay: time.Millisecond,
		DelayGrowth:   1.08,
		DelayStep:     time.Millisecond / 4,
		TicksPerCard:  3,
		MinTicks:      18,
		MaxTicks:      40,
		SettleDelay:   5 * time.Millisecond,
		Deadline:      time.Second,
	}
	sel := roller.NewWithRand(log, drawService, cfg, rand.New(rand.NewSource(1)))
	drawService.SetSelector(sel)
	t.Cleanup(drawService.Close)

	h := handlers.NewForTesting(cardService, drawService, settingsService)

	// Login to get a session cookie for authenticated requests
	token, _ := h.Auth.Login("test-password")
	authCookie := &http.Cookie{
		Name:  auth.CookieName,
		Value: token,
	}

	return &testSetup{
		repo:       repo,
		handlers:   h,
		router:     h.Router(),
		draw:       drawService,
		authCookie: authCookie,
	}
}

// authRequest adds the auth cookie to a request
func (ts *testSetup) authRequest(req *http.Request) *http.Request {
	req.AddCookie(ts.authCookie)
	return req
}

// waitDrawDone polls until the in-flight draw terminates
func (ts *testSetup) waitDrawDone(t *testing.T) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if !ts.draw.State().Active {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("draw did not terminate in time")
}

func TestNew_WithValidTemplates(t *testing.T) {
	templatesFS := createTestTemplatesFS()
	staticServer := handlers.NewStaticServer(fstest.MapFS{})

	repo := testutil.NewTestRepository(t)
	log := logger.New()
	cardService := services.NewCardService(log, repo)
	settingsService := services.NewSettingsService(log, repo)
	drawService := services.NewDrawService(log, repo)
	adminAuth := auth.New("test-password")
	hub := websocket.New(log, drawService, cardService)

	h, err := handlers.New(
		cardService,
		drawService,
		settingsService,
		templatesFS,
		staticServer,
		adminAuth,
		hub,
		handlers.NoopHTTPLogger{},
	)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if h == nil {
		t.Fatal("expected handlers to be created")
	}
}

func TestNew_WithMissingIndexTemplate(t *testing.T) {
	templatesFS := fstest.MapFS{
		"login.html": &fstest.MapFile{Data: []byte(`<html></html>`)},
	}
	staticServer := handlers.NewStaticServer(fstest.MapFS{})

	repo := testutil.NewTestRepository(t)
	log := logger.New()
	cardService := services.NewCardService(log, repo)
	settingsService := services.NewSettingsService(log, repo)
	drawService := services.NewDrawService(log, repo)
	adminAuth := auth.New("test-password")
	hub := websocket.New(log, drawService, cardService)

	_, err := handlers.New(
		cardService,
		drawService,
		settingsService,
		templatesFS,
		staticServer,
		adminAuth,
		hub,
		handlers.NoopHTTPLogger{},
	)

	if err == nil {
		t.Fatal("expected error for missing index template")
	}
}

func TestNew_WithMissingLoginTemplate(t *testing.T) {
	templatesFS := fstest.MapFS{
		"index.html": &fstest.MapFile{Data: []byte(`<html></html>`)},
	}
	staticServer := handlers.NewStaticServer(fstest.MapFS{})

	repo := testutil.NewTestRepository(t)
	log := logger.New()
	cardService := services.NewCardService(log, repo)
	settingsService := services.NewSettingsService(log, repo)
	drawService := services.NewDrawService(log, repo)
	adminAuth := auth.New("test-password")
	hub := websocket.New(log, drawService, cardService)

	_, err := handlers.New(
		cardService,
		drawService,
		settingsService,
		templatesFS,
		staticServer,
		adminAuth,
		hub,
		handlers.NoopHTTPLogger{},
	)

	if err == nil {
		t.Fatal("expected error for missing login template")
	}
}
