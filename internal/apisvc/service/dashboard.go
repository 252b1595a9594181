package service

import (
	"context"
	"time"

	"github.com/sgsc/sgsc-services/internal/apisvc/models"
)

const RecentIncidents = 5

type Summarizer interface {
	Summary(ctx context.Context, date string, recent int) (*models.Dashboard, error)
}

// DashboardService answers the landing screen counters for the current day
// in the configured time zone.
type DashboardService struct {
	store Summarizer
	loc   *time.Location
	now   func() time.Time
}

func NewDashboardService(store Summarizer, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{store: store, loc: loc, now: time.Now}
}

func (s *DashboardService) Today(ctx context.Context) (*models.Dashboard, error) {
	return s.store.Summary(ctx, s.now().In(s.loc).Format(time.DateOnly), RecentIncidents)
}
