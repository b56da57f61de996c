package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/firemap/internal/client/cache"
	"github.com/dmitrijs2005/firemap/internal/client/client"
	"github.com/dmitrijs2005/firemap/internal/client/models"
)

// FAQService loads the help categories once and filters them locally.
type FAQService interface {
	Load(ctx context.Context, refresh bool) (models.FAQCategories, error)
	Search(ctx context.Context, term string) (models.FAQCategories, error)
}

type faqService struct {
	client client.Client

	mu   sync.Mutex
	cats models.FAQCategories
}

func NewFAQService(c client.Client) FAQService {
	return &faqService{client: c}
}

func (f *faqService) Load(ctx context.Context, refresh bool) (models.FAQCategories, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cats != nil && !refresh {
		return f.cats, nil
	}
	cats, err := f.client.GetFAQ(ctx)
	if err != nil {
		return nil, fmt.Errorf("load faq: %w", err)
	}
	if cats == nil {
		cats = models.FAQCategories{}
	}
	f.cats = cats
	return cats, nil
}

func (f *faqService) Search(ctx context.Context, term string) (models.FAQCategories, error) {
	cats, err := f.Load(ctx, false)
	if err != nil {
		return nil, err
	}
	return cache.FilterFAQ(cats, term), nil
}
