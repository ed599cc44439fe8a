package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"Lee_Directory/internal/model"
	"Lee_Directory/internal/pkg"
	"Lee_Directory/internal/repository/mysql"
)

type MemberService struct {
	repo          *mysql.MemberRepository
	communityRepo *mysql.CommunityRepository
	events        EventSender
}

func NewMemberService(db *gorm.DB, events EventSender) *MemberService {
	return &MemberService{
		repo:          &mysql.MemberRepository{DB: db},
		communityRepo: &mysql.CommunityRepository{DB: db},
		events:        events,
	}
}

// MemberInput 公开表单提交的成员信息
type MemberInput struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Profession  string  `json:"profession"`
	CurrentWork *string `json:"currentWork"`
	ShareTopics *string `json:"shareTopics"`
	SeekTopics  *string `json:"seekTopics"`
}

// MemberUpdate 管理端可改的字段，所属社区不可改
type MemberUpdate struct {
	Name        pkg.Patch[string] `json:"name"`
	Location    pkg.Patch[string] `json:"location"`
	Profession  pkg.Patch[string] `json:"profession"`
	CurrentWork pkg.Patch[string] `json:"currentWork"`
	ShareTopics pkg.Patch[string] `json:"shareTopics"`
	SeekTopics  pkg.Patch[string] `json:"seekTopics"`
}

type memberFields struct {
	CommunityID string  `json:"communityId" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Location    string  `json:"location" validate:"required,min=1,max=100"`
	Profession  string  `json:"profession" validate:"required,min=1,max=100"`
	CurrentWork *string `json:"currentWork" validate:"omitempty,max=1000"`
	ShareTopics *string `json:"shareTopics" validate:"omitempty,max=1000"`
	SeekTopics  *string `json:"seekTopics" validate:"omitempty,max=1000"`
}

func fieldsOf(m *model.Member) memberFields {
	return memberFields{
		CommunityID: m.CommunityID,
		Name:        m.Name,
		Location:    m.Location,
		Profession:  m.Profession,
		CurrentWork: m.CurrentWork,
		ShareTopics: m.ShareTopics,
		SeekTopics:  m.SeekTopics,
	}
}

// SharedMember 分享页用
type SharedMember struct {
	Member    *model.Member
	Community *model.Community
	ShareText string
}

func (s *MemberService) emit(ctx context.Context, e Event) {
	if s.events != nil {
		_ = s.events.Send(ctx, e)
	}
}

func (s *MemberService) community(ctx context.Context, slug string) (*model.Community, error) {
	c, err := s.communityRepo.FindBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommunityNotFound
	}
	return c, err
}

// Submit 公开提交，不受访问码限制
func (s *MemberService) Submit(ctx context.Context, slug string, in MemberInput) (*model.Member, *model.Community, error) {
	c, err := s.community(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	f := memberFields{
		CommunityID: c.ID,
		Name:        strings.TrimSpace(in.Name),
		Location:    strings.TrimSpace(in.Location),
		Profession:  strings.TrimSpace(in.Profession),
		CurrentWork: pkg.TrimOrNil(in.CurrentWork),
		ShareTopics: pkg.TrimOrNil(in.ShareTopics),
		SeekTopics:  pkg.TrimOrNil(in.SeekTopics),
	}
	if err := pkg.Validate(f); err != nil {
		return nil, nil, err
	}

	m := &model.Member{
		CommunityID: f.CommunityID,
		Name:        f.Name,
		Location:    f.Location,
		Profession:  f.Profession,
		CurrentWork: f.CurrentWork,
		ShareTopics: f.ShareTopics,
		SeekTopics:  f.SeekTopics,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, nil, fmt.Errorf("create member: %w", err)
	}

	s.emit(ctx, memberEvent(EventMemberSubmitted, c, m))
	return m, c, nil
}

// ListForCommunity 成员列表，设置了访问码的社区需要正确的码
func (s *MemberService) ListForCommunity(ctx context.Context, slug, accessCode string) (*model.Community, []model.Member, error) {
	c, err := s.community(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if err := EvaluateAccess(c, accessCode).Err(); err != nil {
		return c, nil, err
	}
	list, err := s.repo.ListByCommunity(ctx, c.ID)
	if err != nil {
		return nil, nil, err
	}
	return c, list, nil
}

// GetShared 单个成员查询，不受访问码限制
func (s *MemberService) GetShared(ctx context.Context, slug, id string) (*SharedMember, error) {
	c, err := s.community(ctx, slug)
	if err != nil {
		return nil, err
	}
	m, err := s.repo.FindInCommunity(ctx, c.ID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &SharedMember{
		Member:    m,
		Community: c,
		ShareText: pkg.ShareText(pkg.ShareCard{
			Name:        m.Name,
			Location:    m.Location,
			Profession:  m.Profession,
			CurrentWork: m.CurrentWork,
			ShareTopics: m.ShareTopics,
			SeekTopics:  m.SeekTopics,
		}),
	}, nil
}

// Search 管理端列表；communityID 为空或 "all" 表示全部
func (s *MemberService) Search(ctx context.Context, communityID, search string) ([]model.Member, error) {
	if communityID == "all" {
		communityID = ""
	}
	return s.repo.Search(ctx, mysql.MemberFilter{CommunityID: communityID, Search: search})
}

func (s *MemberService) Update(ctx context.Context, id string, in MemberUpdate) (*model.Member, error) {
	cur, err := s.repo.FindWithCommunity(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}

	f := fieldsOf(cur)
	cols := map[string]any{}
	required := func(p pkg.Patch[string], col string, dst *string) {
		if !p.Set {
			return
		}
		*dst = ""
		if p.Value != nil {
			*dst = strings.TrimSpace(*p.Value)
		}
		cols[col] = *dst
	}
	optional := func(p pkg.Patch[string], col string, dst **string) {
		if !p.Set {
			return
		}
		*dst = pkg.TrimOrNil(p.Value)
		cols[col] = *dst
	}
	required(in.Name, "name", &f.Name)
	required(in.Location, "location", &f.Location)
	required(in.Profession, "profession", &f.Profession)
	optional(in.CurrentWork, "current_work", &f.CurrentWork)
	optional(in.ShareTopics, "share_topics", &f.ShareTopics)
	optional(in.SeekTopics, "seek_topics", &f.SeekTopics)

	if err := pkg.Validate(f); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, cols); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}

	updated, err := s.repo.FindWithCommunity(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(cols) > 0 {
		s.emit(ctx, memberEvent(EventMemberUpdated, updated.Community, updated))
	}
	return updated, nil
}

func (s *MemberService) Delete(ctx context.Context, id string) error {
	cur, err := s.repo.FindWithCommunity(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMemberNotFound
	}
	if err != nil {
		return err
	}
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if n == 0 {
		return ErrMemberNotFound
	}
	s.emit(ctx, memberEvent(EventMemberDeleted, cur.Community, cur))
	return nil
}
