package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/firemap/internal/client/cache"
	"github.com/dmitrijs2005/firemap/internal/client/client"
	"github.com/dmitrijs2005/firemap/internal/client/geocoder"
	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/dmitrijs2005/firemap/internal/common"
	"github.com/dmitrijs2005/firemap/internal/logging"
	"github.com/dmitrijs2005/firemap/internal/validatex"
	"github.com/paulmach/orb"
)

var ErrEditNotVerified = errors.New("building edit not verified, request and enter the edit code first")

// BuildingService lists, searches, creates and edits buildings. Editing an
// existing building needs its edit code verified first; one verification
// covers one successful update.
type BuildingService interface {
	List(ctx context.Context, refresh bool) ([]models.Building, error)
	Mappable(ctx context.Context) ([]models.Building, error)
	Search(ctx context.Context, term string) (cache.SearchResult, error)
	Get(ctx context.Context, id models.ID) (models.Building, error)
	Add(ctx context.Context, f models.BuildingForm) error
	RequestEdit(ctx context.Context, id models.ID) error
	VerifyEdit(ctx context.Context, id models.ID, otp string) error
	Update(ctx context.Context, f models.BuildingForm) error
	SearchAddress(ctx context.Context, query string) ([]models.Place, error)
	Reverse(ctx context.Context, p orb.Point) (models.Place, error)
}

type buildingService struct {
	client   client.Client
	cache    *cache.BuildingCache
	geocoder geocoder.Geocoder
	log      logging.Logger

	mu       sync.Mutex
	verified map[models.ID]bool
}

func NewBuildingService(c client.Client, bc *cache.BuildingCache, g geocoder.Geocoder, log logging.Logger) BuildingService {
	return &buildingService{client: c, cache: bc, geocoder: g, log: log, verified: map[models.ID]bool{}}
}

func (s *buildingService) List(ctx context.Context, refresh bool) ([]models.Building, error) {
	load := s.cache.Load
	if refresh {
		load = s.cache.Refresh
	}
	if err := load(ctx); err != nil {
		return nil, fmt.Errorf("load buildings: %w", err)
	}
	return s.cache.All(), nil
}

// Mappable lists the buildings that can be pinned on a map.
func (s *buildingService) Mappable(ctx context.Context) ([]models.Building, error) {
	if err := s.cache.Load(ctx); err != nil {
		return nil, fmt.Errorf("load buildings: %w", err)
	}
	return s.cache.Mappable(), nil
}

func (s *buildingService) Search(ctx context.Context, term string) (cache.SearchResult, error) {
	if err := s.cache.Load(ctx); err != nil {
		return cache.SearchResult{}, fmt.Errorf("load buildings: %w", err)
	}
	return s.cache.Search(term), nil
}

func (s *buildingService) Get(ctx context.Context, id models.ID) (models.Building, error) {
	if err := s.cache.Load(ctx); err != nil {
		return models.Building{}, fmt.Errorf("load buildings: %w", err)
	}
	b, ok := s.cache.Find(id)
	if !ok {
		return models.Building{}, fmt.Errorf("building %s: %w", id, common.ErrorNotFound)
	}
	return b, nil
}

func (s *buildingService) Add(ctx context.Context, f models.BuildingForm) error {
	f.Editing = false
	f.ID = ""
	trimForm(&f)
	if err := validatex.Struct(f); err != nil {
		return err
	}
	if err := s.client.AddBuilding(ctx, f); err != nil {
		s.log.Error(ctx, "add building failed", "err", err)
		return fmt.Errorf("add building: %w", err)
	}
	s.cache.Invalidate()
	s.log.Info(ctx, "building added", "name", f.Name)
	return nil
}

func (s *buildingService) RequestEdit(ctx context.Context, id models.ID) error {
	if err := s.client.SendBuildingOTP(ctx, id); err != nil {
		return fmt.Errorf("request edit code: %w", err)
	}
	return nil
}

func (s *buildingService) VerifyEdit(ctx context.Context, id models.ID, otp string) error {
	otp = strings.TrimSpace(otp)
	if otp == "" {
		return validatex.ValidationErrors{"OTP": "is required"}
	}
	if err := s.client.VerifyBuildingOTP(ctx, id, otp); err != nil {
		return fmt.Errorf("verify edit code: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verified[id] = true
	return nil
}

func (s *buildingService) Update(ctx context.Context, f models.BuildingForm) error {
	f.Editing = true
	trimForm(&f)
	if err := validatex.Struct(f); err != nil {
		return err
	}

	s.mu.Lock()
	ok := s.verified[f.ID]
	s.mu.Unlock()
	if !ok {
		return ErrEditNotVerified
	}

	if err := s.client.UpdateBuilding(ctx, f); err != nil {
		s.log.Error(ctx, "update building failed", "building_id", f.ID.String(), "err", err)
		return fmt.Errorf("update building: %w", err)
	}

	s.mu.Lock()
	delete(s.verified, f.ID)
	s.mu.Unlock()
	s.cache.Invalidate()
	s.log.Info(ctx, "building updated", "building_id", f.ID.String())
	return nil
}

func (s *buildingService) SearchAddress(ctx context.Context, query string) ([]models.Place, error) {
	return s.geocoder.Search(ctx, query, geocoder.DefaultLimit)
}

func (s *buildingService) Reverse(ctx context.Context, p orb.Point) (models.Place, error) {
	return s.geocoder.Reverse(ctx, p)
}

func trimForm(f *models.BuildingForm) {
	f.Name = strings.TrimSpace(f.Name)
	f.Address = strings.TrimSpace(f.Address)
	f.Zipcode = strings.TrimSpace(f.Zipcode)
	f.SuiteNumber = strings.TrimSpace(f.SuiteNumber)
}
