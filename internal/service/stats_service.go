package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"Lee_Directory/internal/model"
	"Lee_Directory/internal/repository/mysql"
)

const recentMemberLimit = 10

type Stats struct {
	TotalCommunities int64          `json:"totalCommunities"`
	TotalMembers     int64          `json:"totalMembers"`
	TodayMembers     int64          `json:"todayMembers"`
	RecentMembers    []model.Member `json:"recentMembers"`
}

type StatsService struct {
	communityRepo *mysql.CommunityRepository
	memberRepo    *mysql.MemberRepository
	now           func() time.Time
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		communityRepo: &mysql.CommunityRepository{DB: db},
		memberRepo:    &mysql.MemberRepository{DB: db},
		now:           time.Now,
	}
}

// startOfDay 本地时区零点
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *StatsService) Get(ctx context.Context) (*Stats, error) {
	var st Stats
	var err error

	if st.TotalCommunities, err = s.communityRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count communities: %w", err)
	}
	if st.TotalMembers, err = s.memberRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	if st.TodayMembers, err = s.memberRepo.CountSince(ctx, startOfDay(s.now())); err != nil {
		return nil, fmt.Errorf("count today: %w", err)
	}
	if st.RecentMembers, err = s.memberRepo.Recent(ctx, recentMemberLimit); err != nil {
		return nil, fmt.Errorf("recent members: %w", err)
	}
	return &st, nil
}
