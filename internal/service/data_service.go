// Package service holds the data access operations the HTTP layer calls. It builds store
// queries through the repositories so callers never construct them.
package service

import (
	"github.com/jamiebhpark/MentalHealthApp/internal/docstore"
	"github.com/jamiebhpark/MentalHealthApp/internal/featureflags"
	"github.com/jamiebhpark/MentalHealthApp/internal/repository"
)

// Options configures NewDataService.
type Options struct {
	Retry       RetryPolicy
	Flags       *featureflags.Manager
	XPPerRecord int
	XPPerPost   int
}

// DataService is the full operation set over one store: journal, community and profile.
type DataService struct {
	*JournalService
	*CommunityService
	*ProfileService
}

// NewDataService wires repositories and services over store.
func NewDataService(store docstore.Store, opts Options) *DataService {
	profiles := repository.NewProfileRepository(store)
	rewards := NewRewards(profiles, opts.Flags, opts.XPPerRecord, opts.XPPerPost)

	return &DataService{
		JournalService:   NewJournalService(repository.NewEmotionRepository(store), rewards, opts.Retry),
		CommunityService: NewCommunityService(repository.NewPostRepository(store), rewards, opts.Retry),
		ProfileService:   NewProfileService(profiles, opts.Retry),
	}
}
