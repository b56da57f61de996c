package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLayout struct {
	calls []string
	args  [][]string
}

func (f *fakeLayout) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return nil
}

func (f *fakeLayout) Levels() error                              { return f.rec("levels", nil) }
func (f *fakeLayout) Select(_ context.Context, a []string) error { return f.rec("select", a) }
func (f *fakeLayout) ListIcons(_ context.Context, a []string) error {
	return f.rec("icons", a)
}
func (f *fakeLayout) Categories(_ context.Context, a []string) error {
	return f.rec("categories", a)
}
func (f *fakeLayout) Category(a []string) error                  { return f.rec("category", a) }
func (f *fakeLayout) Zoom(a []string) error                      { return f.rec("zoom", a) }
func (f *fakeLayout) EditMode(context.Context) error             { return f.rec("edit", nil) }
func (f *fakeLayout) Place(a []string) error                     { return f.rec("place", a) }
func (f *fakeLayout) Move(a []string) error                      { return f.rec("move", a) }
func (f *fakeLayout) Label(a []string) error                     { return f.rec("label", a) }
func (f *fakeLayout) Delete(_ context.Context, a []string) error { return f.rec("delete", a) }
func (f *fakeLayout) Photo(a []string) error                     { return f.rec("photo", a) }
func (f *fakeLayout) Save(context.Context) error                 { return f.rec("save", nil) }
func (f *fakeLayout) Export(a []string) error                    { return f.rec("export", a) }

func TestRunLayoutREPL_Dispatch(t *testing.T) {
	printed := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"levels",
		"select b 20",
		"categories refresh",
		"category Fire Exits",
		"otp",
		"place 3",
		"move local:u1 1.5 2.5",
		"label 99 Main valve",
		"delete 99",
		"photo /tmp/a.jpg hall way",
		"zoom 0.002",
		"save",
		"export out.geojson",
		"icons refresh",
		"nope",
		"back",
		"icons",
	}, "\n")

	l := &fakeLayout{}
	runLayoutREPL(context.Background(), l, func() string { return "s" }, scannerFor(input))

	assert.Equal(t, []string{"levels", "select", "categories", "category", "edit", "place", "move",
		"label", "delete", "photo", "zoom", "save", "export", "icons"}, l.calls)
	assert.Equal(t, []string{"refresh"}, l.args[13])
	assert.Equal(t, []string{"refresh"}, l.args[2])
	assert.Equal(t, []string{"Fire", "Exits"}, l.args[3])
	assert.Equal(t, []string{"99", "Main", "valve"}, l.args[7])
	assert.Contains(t, *printed, helpLayout)
	assert.Contains(t, *printed, "Unknown command: nope")
}

func TestApp_LayoutExportAndPhotos(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "hall.png")
	require.NoError(t, os.WriteFile(photo, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600))
	export := filepath.Join(dir, "out", "ground.geojson")

	script := strings.Join([]string{
		"login", "ann_lee", "secret1",
		"layout 1",
		"categories",
		"photo " + photo + " main hall",
		"export " + export,
		"select f 10",
		"back",
	}, "\n")

	app, _, out, _ := newTestApp(t, script)
	app.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "  Exits\n")
	assert.Contains(t, text, "https://img/3.png")
	assert.Contains(t, text, "1 photo(s) queued")
	assert.Contains(t, text, "Dropped 1 queued photo(s)")

	data, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FeatureCollection"`)
	assert.Contains(t, string(data), `"level_id": "10"`)
}
