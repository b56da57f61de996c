package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/firemap/internal/client/cache"
	"github.com/dmitrijs2005/firemap/internal/client/layout"
	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/client/services"
	"github.com/dmitrijs2005/firemap/internal/client/session"
	"github.com/dmitrijs2005/firemap/internal/logging"
	"github.com/dmitrijs2005/firemap/internal/netx"
)

// Deps are the collaborators an App is built from.
type Deps struct {
	Session   *session.Session
	Auth      services.AuthService
	Buildings services.BuildingService
	Gallery   services.GalleryService
	FAQ       services.FAQService
	Catalog   *cache.CatalogCache
	LayoutAPI layout.API
	Logger    logging.Logger

	// GalleryDir receives downloaded gallery images.
	GalleryDir string
}

type App struct {
	Deps
	in  *bufio.Scanner
	out io.Writer
}

// NewApp builds an App reading from stdin and writing to stdout.
func NewApp(d Deps) *App {
	return newApp(d, os.Stdin, os.Stdout)
}

func newApp(d Deps, in io.Reader, out io.Writer) *App {
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	if d.GalleryDir == "" {
		d.GalleryDir = "gallery"
	}
	return &App{Deps: d, in: bufio.NewScanner(in), out: out}
}

// Run blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.printf("Welcome to firemap (type 'help' for commands)\n")
	if a.isLoggedIn() {
		a.printf("Signed in as %s\n", a.Session.User().UserName)
	}
	runREPL(ctx, a, a.status, a.in)
}

func (a *App) isLoggedIn() bool { return a.Session.LoggedIn() }

func (a *App) isEditor() bool { return a.Session.IsEditor() }

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "guest"
	}
	u := a.Session.User()
	name := u.UserName
	if name == "" {
		name = u.Email
	}
	if role := a.Session.Role(); role != "" {
		return fmt.Sprintf("%s (%s)", name, role)
	}
	return name
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.in, prompt, a.out)
}

// loadPhoto reads an image file for upload.
func loadPhoto(path, caption string) (models.Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Photo{}, fmt.Errorf("read photo: %w", err)
	}
	ct, _ := netx.Sniff(data)
	return models.Photo{Name: filepath.Base(path), ContentType: ct, Data: data, Caption: caption}, nil
}
