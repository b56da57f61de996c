package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/firemap/internal/client/cache"
	"github.com/dmitrijs2005/firemap/internal/client/client"
	"github.com/dmitrijs2005/firemap/internal/client/geocoder"
	"github.com/dmitrijs2005/firemap/internal/client/services"
	"github.com/dmitrijs2005/firemap/internal/client/session"
	"github.com/dmitrijs2005/firemap/internal/logging"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer records what the CLI sent to the API.
type fakeServer struct {
	mu      sync.Mutex
	deleted []string
	saved   map[string][]string
	otps    []string
	fetches int
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, map[string]any{"success": true, "message": "ok", "data": data})
}

func (f *fakeServer) routes(r *mux.Router) {
	r.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"success": true, "token": "tok",
			"data": map[string]any{"id": 1, "user_name": "ann_lee", "role": "Editor"},
		})
	}).Methods(http.MethodPost)

	r.HandleFunc("/get/building", func(w http.ResponseWriter, r *http.Request) {
		ok(w, []map[string]any{{
			"id": 1, "building_name": "Depot", "building_address": "1 Main St", "zipcode": "10001",
			"lat": "12.34", "lon": "56.78",
			"floors": []map[string]any{{"id": 10, "floor_name": "Ground"}},
		}})
	}).Methods(http.MethodGet)

	r.HandleFunc("/get/icons", func(w http.ResponseWriter, r *http.Request) {
		ok(w, []map[string]any{{
			"category_name": "Exits",
			"icons":         []map[string]any{{"icon_id": 3, "icon_image_url": "https://img/3.png"}},
		}})
	}).Methods(http.MethodGet)

	r.HandleFunc("/get/drag/icon", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.fetches++
		gone := len(f.deleted) > 0
		f.mu.Unlock()
		if gone {
			ok(w, []any{})
			return
		}
		ok(w, []map[string]any{{
			"drag_icon_id": 99, "icon_id": 3, "latitude": "12.3", "longitude": "56.7",
			"icon_image_url": "https://img/3.png", "category_name": "Exits", "message": "door",
		}})
	})

	r.HandleFunc("/drag/icon/opt/send", func(w http.ResponseWriter, r *http.Request) { ok(w, nil) })
	r.HandleFunc("/drag/icon/opt/verify", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.otps = append(f.otps, body["otp"])
		f.mu.Unlock()
		if body["otp"] != "1234" {
			writeJSON(w, map[string]any{"success": false, "message": "Invalid OTP"})
			return
		}
		ok(w, nil)
	})

	r.HandleFunc("/delete/drag/icon", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.deleted = append(f.deleted, body["drag_icon_id"])
		f.mu.Unlock()
		ok(w, nil)
	})

	r.HandleFunc("/drag/icon/save", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.saved = r.MultipartForm.Value
		f.mu.Unlock()
		ok(w, nil)
	})
}

func newTestApp(t *testing.T, script string) (*App, *fakeServer, *bytes.Buffer, *[]string) {
	t.Helper()

	fs := &fakeServer{}
	root := mux.NewRouter()
	fs.routes(root.PathPrefix("/api/v1").Subrouter())
	srv := httptest.NewServer(root)
	t.Cleanup(srv.Close)

	sess := session.New(nil)
	c, err := client.NewHTTPClient(srv.URL+"/api/v1", sess, client.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	log := logging.Nop()
	geo := geocoder.NewOpenCage(srv.URL+"/geocode", "key", time.Second, log)
	d := Deps{
		Session:   sess,
		Auth:      services.NewAuthService(c, sess, log),
		Buildings: services.NewBuildingService(c, cache.NewBuildingCache(c), geo, log),
		Gallery:   services.NewGalleryService(c, srv.Client(), log),
		FAQ:       services.NewFAQService(c),
		Catalog:   cache.NewCatalogCache(c),
		LayoutAPI: c,
		Logger:    log,
	}

	var printed []string
	origPrint, origTerm := printlnFn, isTerminal
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { printlnFn, isTerminal = origPrint, origTerm })

	var out bytes.Buffer
	return newApp(d, strings.NewReader(script), &out), fs, &out, &printed
}

func TestApp_LayoutSession(t *testing.T) {
	script := strings.Join([]string{
		"buildings",
		"login",
		"ann_lee",
		"secret1",
		"help",
		"buildings",
		"buildings map",
		"show 1",
		"layout 1",
		"icons",
		"place 3",
		"edit",
		"1234",
		"label 99 Main exit",
		"delete 99",
		"place 3",
		"save",
		"back",
		"exit",
	}, "\n")

	app, fs, out, printed := newTestApp(t, script)
	app.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Login successful, signed in as ann_lee")
	assert.Contains(t, text, "[1] Depot, 1 Main St 10001")
	assert.Contains(t, text, "[1] Depot @ 12.34, 56.78")
	assert.Contains(t, text, "floor    10   Ground")
	assert.Contains(t, text, `"door"`)
	assert.Contains(t, text, "Editing enabled")
	assert.Contains(t, text, "Deleted")
	assert.Contains(t, text, "Icons: 1 saved")
	assert.Contains(t, text, "Photos: none queued")

	assert.Contains(t, *printed, "Please log in first")
	assert.Contains(t, *printed, helpEditor)
	assert.Contains(t, *printed, "Error: "+"layout is read-only, verify the edit code first")
	assert.Equal(t, "Bye!", (*printed)[len(*printed)-1])

	assert.Equal(t, []string{"1234"}, fs.otps)
	assert.Equal(t, []string{"99"}, fs.deleted)
	assert.Equal(t, []string{"3"}, fs.saved["icon_id[]"])
	assert.Equal(t, []string{"12.34"}, fs.saved["latitude[]"])
	assert.Equal(t, []string{"56.78"}, fs.saved["longitude[]"])
	assert.Equal(t, []string{""}, fs.saved["message[]"])
	assert.Equal(t, []string{"10"}, fs.saved["floor_id"])
}

func TestApp_WrongLayoutCodeStaysReadOnly(t *testing.T) {
	script := strings.Join([]string{
		"login", "ann_lee", "secret1",
		"layout 1",
		"icons refresh",
		"edit", "0000",
		"delete 99",
		"back",
	}, "\n")

	app, fs, _, printed := newTestApp(t, script)
	app.Run(context.Background())

	assert.Contains(t, *printed, "Error: verify edit code: Invalid OTP")
	assert.Contains(t, *printed, "Error: layout is read-only, verify the edit code first")
	assert.Empty(t, fs.deleted)
	assert.Equal(t, 2, fs.fetches)
}

func TestApp_ViewerDoesNotSeeEditorCommands(t *testing.T) {
	printed := capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, scannerFor("help\nadd\nedit 1\nexit"))

	assert.Contains(t, *printed, helpViewer)
	assert.Contains(t, *printed, "Unknown command: add")
	assert.Empty(t, exec.calls)
}
