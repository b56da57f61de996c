// Package layout is the floor-layout editor. An Editor is bound to one
// building and shows the icons placed on one of its floors or basements at a
// time. Icons can only be changed after the building's layout OTP has been
// verified; the editor drops back to viewing whenever it is closed or moved
// to another level.
//
// All operations on an Editor are serialized.
package layout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/common"
	"github.com/dmitrijs2005/firemap/internal/logging"
	"github.com/paulmach/orb"
)

var (
	ErrNotEditing      = errors.New("layout is read-only, verify the edit code first")
	ErrMissingImage    = errors.New("icon has no image")
	ErrIconNotFound    = errors.New("icon not found")
	ErrNoContext       = errors.New("no floor or basement selected")
	ErrNothingToSave   = errors.New("no icons to save")
	ErrUnknownLevel    = errors.New("unknown floor or basement")
	ErrOTPNotRequested = errors.New("request an edit code first")
	ErrTooManyPhotos   = fmt.Errorf("at most %d photos per save", MaxPhotos)
)

// MaxPhotos bounds one photo upload.
const MaxPhotos = 5

// API is the subset of the remote client the editor talks to.
type API interface {
	GetPlacedIcons(ctx context.Context, ref models.LevelRef) ([]models.DragIcon, error)
	SavePlacedIcons(ctx context.Context, ref models.LevelRef, icons []models.IconPlacement) error
	DeletePlacedIcon(ctx context.Context, dragIconID models.ID) error
	SendLayoutOTP(ctx context.Context, buildingID models.ID) error
	VerifyLayoutOTP(ctx context.Context, buildingID models.ID, otp string) error
	UploadLevelPhotos(ctx context.Context, ref models.LevelRef, photos []models.Photo) error
}

type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// PlacedIcon is an icon on the current level.
type PlacedIcon struct {
	Ref      IconRef
	IconID   models.ID
	Location orb.Point
	ImageURL string
	Category string
	Label    string
}

// SaveReport carries the outcome of both SaveAll calls. A nil error means
// the call succeeded; PhotosSkipped is set when no photos were given.
type SaveReport struct {
	Icons         error
	Photos        error
	PhotosSkipped bool
	Saved         int
}

// Err joins both outcomes.
func (r SaveReport) Err() error {
	return errors.Join(r.Icons, r.Photos)
}

type Option func(*Editor)

func WithLogger(l logging.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithRefGenerator replaces NewLocalRef for new icons.
func WithRefGenerator(fn func() IconRef) Option {
	return func(e *Editor) { e.newRef = fn }
}

type Editor struct {
	api      API
	building models.Building
	log      logging.Logger
	newRef   func() IconRef

	mu       sync.Mutex
	state    State
	level    models.Level
	hasLevel bool
	region   Region
	icons    []PlacedIcon
	otpSent  bool
	selected string
	hidden   map[string]bool
}

// NewEditor opens a viewing editor for b with no level selected. The map is
// centred on the building.
func NewEditor(api API, b models.Building, opts ...Option) *Editor {
	e := &Editor{
		api:      api,
		building: b,
		log:      logging.Nop(),
		newRef:   NewLocalRef,
		hidden:   map[string]bool{},
	}
	for _, o := range opts {
		o(e)
	}
	loc, _ := b.Location()
	e.region = centred(loc)
	e.log = e.log.With("building_id", b.ID.String())
	return e
}

func (e *Editor) Building() models.Building { return e.building }

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Level returns the current floor or basement.
func (e *Editor) Level() (models.Level, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level, e.hasLevel
}

func (e *Editor) Region() Region {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.region
}

// Zoom sets the visible latitude and longitude span.
func (e *Editor) Zoom(latDelta, lonDelta float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if latDelta > 0 {
		e.region.LatDelta = latDelta
	}
	if lonDelta > 0 {
		e.region.LonDelta = lonDelta
	}
}

// MarkerSize is the icon size at the current zoom.
func (e *Editor) MarkerSize() float64 {
	return MarkerSize(e.Region().LatDelta)
}

func (e *Editor) LabelWidth() float64 {
	return LabelWidth(e.MarkerSize())
}

// Icons returns a copy of every icon on the current level.
func (e *Editor) Icons() []PlacedIcon {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]PlacedIcon, len(e.icons))
	copy(out, e.icons)
	return out
}

// VisibleIcons omits icons of hidden categories.
func (e *Editor) VisibleIcons() []PlacedIcon {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]PlacedIcon, 0, len(e.icons))
	for _, ic := range e.icons {
		if !e.hidden[ic.Category] {
			out = append(out, ic)
		}
	}
	return out
}

// SelectCategory makes name the category new icons are tagged with and
// shows it. Selecting the current category again toggles its visibility.
func (e *Editor) SelectCategory(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected != name {
		e.selected = name
		delete(e.hidden, name)
		return
	}
	e.hidden[name] = !e.hidden[name]
}

func (e *Editor) SelectedCategory() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

func (e *Editor) Hidden(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hidden[name]
}

// SelectContext switches to another floor or basement. The map is recentred
// on the level, or on the building when the level has no coordinate. Unsaved
// icons are dropped, the editor returns to viewing and the icons of the new
// level are fetched. When the fetch fails the level is selected with an
// empty icon list.
func (e *Editor) SelectContext(ctx context.Context, kind models.LevelKind, id models.ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	lvl, ok := e.building.Level(kind, id)
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrUnknownLevel, kind, id)
	}

	e.switchTo(lvl)
	return e.fetch(ctx, lvl)
}

// switchTo makes lvl current: the map recentres on it, editing ends and the
// unsaved list is dropped.
func (e *Editor) switchTo(lvl models.Level) {
	center := e.region.Center
	if lvl.HasLocation {
		center = lvl.Location
	} else if loc, ok := e.building.Location(); ok {
		center = loc
	}

	e.level, e.hasLevel = lvl, true
	e.region = centred(center)
	e.state = Viewing
	e.icons = nil
}

func (e *Editor) isCurrent(lvl models.Level) bool {
	return e.hasLevel && e.level.Kind == lvl.Kind && e.level.ID == lvl.ID
}

// FetchIcons replaces the icon list with what the server holds for the given
// level and makes that level current. Moving to another level is a context
// switch, as with SelectContext. On failure nothing changes.
func (e *Editor) FetchIcons(ctx context.Context, kind models.LevelKind, id models.ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	lvl, ok := e.building.Level(kind, id)
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrUnknownLevel, kind, id)
	}
	if e.isCurrent(lvl) {
		return e.fetch(ctx, lvl)
	}

	list, err := e.load(ctx, lvl)
	if err != nil {
		return err
	}
	e.switchTo(lvl)
	e.icons = list
	return nil
}

// Reload refetches the current level.
func (e *Editor) Reload(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.hasLevel {
		return ErrNoContext
	}
	return e.fetch(ctx, e.level)
}

func (e *Editor) fetch(ctx context.Context, lvl models.Level) error {
	list, err := e.load(ctx, lvl)
	if err != nil {
		return err
	}
	e.level, e.hasLevel = lvl, true
	e.icons = list
	return nil
}

// load reads the level's icons from the server, dropping rows that cannot be
// drawn.
func (e *Editor) load(ctx context.Context, lvl models.Level) ([]PlacedIcon, error) {
	icons, err := e.api.GetPlacedIcons(ctx, e.ref(lvl))
	if err != nil {
		e.log.Warn(ctx, "fetch icons failed", "level", lvl.Label(), "err", err)
		return nil, fmt.Errorf("fetch icons: %w", err)
	}

	list := make([]PlacedIcon, 0, len(icons))
	for _, d := range icons {
		if strings.TrimSpace(d.ImageURL) == "" {
			continue
		}
		if !d.Latitude.Valid || !d.Longitude.Valid {
			e.log.Warn(ctx, "icon without coordinate skipped", "level", lvl.Label(), "drag_icon_id", d.DragIconID)
			continue
		}
		list = append(list, PlacedIcon{
			Ref:      Persisted(d.DragIconID),
			IconID:   d.IconID,
			Location: orb.Point{d.Longitude.Value, d.Latitude.Value},
			ImageURL: d.ImageURL,
			Category: d.CategoryName,
			Label:    d.Message,
		})
	}

	e.log.Debug(ctx, "icons fetched", "level", lvl.Label(), "count", len(list))
	return list, nil
}

func (e *Editor) ref(lvl models.Level) models.LevelRef {
	return models.LevelRef{BuildingID: e.building.ID, Kind: lvl.Kind, LevelID: lvl.ID}
}

// RequestEdit asks the server to send the layout edit code.
func (e *Editor) RequestEdit(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.api.SendLayoutOTP(ctx, e.building.ID); err != nil {
		return fmt.Errorf("request edit code: %w", err)
	}
	e.otpSent = true
	return nil
}

// VerifyEdit submits the edit code and switches to editing on success.
func (e *Editor) VerifyEdit(ctx context.Context, code string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.otpSent {
		return ErrOTPNotRequested
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: code is required", common.ErrorValidation)
	}
	if err := e.api.VerifyLayoutOTP(ctx, e.building.ID, code); err != nil {
		return fmt.Errorf("verify edit code: %w", err)
	}
	e.state = Editing
	e.log.Info(ctx, "layout editing enabled")
	return nil
}

// Close ends the session on this building's layout.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Viewing
	e.otpSent = false
	e.icons = nil
}

func (e *Editor) mutable() error {
	if !e.hasLevel {
		return ErrNoContext
	}
	if e.state != Editing {
		return ErrNotEditing
	}
	return nil
}

func (e *Editor) find(ref IconRef) int {
	for i := range e.icons {
		if e.icons[i].Ref == ref {
			return i
		}
	}
	return -1
}

// PlaceIcon adds a catalog icon to the current level, tagged with the
// selected category. The first icon lands on the map centre, every next one
// just north-east of the previous.
func (e *Editor) PlaceIcon(icon models.CatalogIcon) (PlacedIcon, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mutable(); err != nil {
		return PlacedIcon{}, err
	}
	if !icon.HasImage() {
		return PlacedIcon{}, ErrMissingImage
	}

	loc := e.region.Center
	if n := len(e.icons); n > 0 {
		last := e.icons[n-1].Location
		loc = orb.Point{last.Lon() + PlacementOffset, last.Lat() + PlacementOffset}
	}

	p := PlacedIcon{
		Ref:      e.newRef(),
		IconID:   icon.ID,
		Location: loc,
		ImageURL: icon.ImageURL,
		Category: e.selected,
	}
	e.icons = append(e.icons, p)
	return p, nil
}

func (e *Editor) MoveIcon(ref IconRef, to orb.Point) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mutable(); err != nil {
		return err
	}
	i := e.find(ref)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrIconNotFound, ref)
	}
	e.icons[i].Location = to
	return nil
}

func (e *Editor) SetLabel(ref IconRef, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mutable(); err != nil {
		return err
	}
	i := e.find(ref)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrIconNotFound, ref)
	}
	e.icons[i].Label = text
	return nil
}

// DeleteIcon removes an icon. Persisted icons are deleted on the server
// first and stay in the list when that fails.
func (e *Editor) DeleteIcon(ctx context.Context, ref IconRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mutable(); err != nil {
		return err
	}
	i := e.find(ref)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrIconNotFound, ref)
	}

	if id, ok := ref.ServerID(); ok {
		if err := e.api.DeletePlacedIcon(ctx, id); err != nil {
			e.log.Warn(ctx, "delete icon failed", "level", e.level.Label(), "icon", id.String(), "err", err)
			return fmt.Errorf("delete icon: %w", err)
		}
	}

	// the list may hold the same ref more than once
	kept := e.icons[:0]
	for _, ic := range e.icons {
		if ic.Ref != ref {
			kept = append(kept, ic)
		}
	}
	e.icons = kept
	return nil
}

// SaveAll uploads the icon list, then the photos. The two calls are
// independent: a failed icon upload does not stop the photos and nothing is
// rolled back. After a successful icon upload the list is refetched so new
// icons learn their server ids.
func (e *Editor) SaveAll(ctx context.Context, photos []models.Photo) (SaveReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mutable(); err != nil {
		return SaveReport{}, err
	}
	if len(photos) > MaxPhotos {
		return SaveReport{}, ErrTooManyPhotos
	}

	ref := e.ref(e.level)
	var rep SaveReport

	placements := e.placements()
	switch {
	case len(placements) == 0:
		rep.Icons = ErrNothingToSave
	default:
		if err := e.api.SavePlacedIcons(ctx, ref, placements); err != nil {
			e.log.Error(ctx, "save icons failed", "level", e.level.Label(), "err", err)
			rep.Icons = fmt.Errorf("save icons: %w", err)
			break
		}
		rep.Saved = len(placements)
		e.log.Info(ctx, "icons saved", "level", e.level.Label(), "count", rep.Saved)
		if err := e.fetch(ctx, e.level); err != nil {
			e.log.Warn(ctx, "refresh after save failed", "level", e.level.Label(), "err", err)
		}
	}

	if len(photos) == 0 {
		rep.PhotosSkipped = true
	} else if err := e.api.UploadLevelPhotos(ctx, ref, photos); err != nil {
		e.log.Error(ctx, "upload photos failed", "level", e.level.Label(), "err", err)
		rep.Photos = fmt.Errorf("upload photos: %w", err)
	}

	return rep, rep.Err()
}

// placements builds the upload rows, one per reference.
func (e *Editor) placements() []models.IconPlacement {
	seen := make(map[IconRef]bool, len(e.icons))
	out := make([]models.IconPlacement, 0, len(e.icons))
	for _, ic := range e.icons {
		if seen[ic.Ref] {
			continue
		}
		seen[ic.Ref] = true
		out = append(out, models.IconPlacement{IconID: ic.IconID, Location: ic.Location, Label: ic.Label})
	}
	return out
}
