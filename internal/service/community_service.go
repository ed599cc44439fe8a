package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"Lee_Directory/internal/model"
	"Lee_Directory/internal/pkg"
	"Lee_Directory/internal/repository/mysql"
)

// maxSlugConflicts 探测通过后仍被唯一索引拒绝的重试上限
const maxSlugConflicts = 3

type CommunityService struct {
	repo   *mysql.CommunityRepository
	events EventSender
	now    func() time.Time
}

func NewCommunityService(db *gorm.DB, events EventSender) *CommunityService {
	return &CommunityService{
		repo:   &mysql.CommunityRepository{DB: db},
		events: events,
		now:    time.Now,
	}
}

// CommunityInput 创建社区的请求体
type CommunityInput struct {
	Name               string  `json:"name"`
	Description        *string `json:"description"`
	AccessCode         *string `json:"accessCode"`
	GenerateAccessCode bool    `json:"generateAccessCode"`
}

// CommunityUpdate 可修改的字段；未出现的字段保持不变，null 清空可选字段
type CommunityUpdate struct {
	Name               pkg.Patch[string] `json:"name"`
	Slug               pkg.Patch[string] `json:"slug"`
	Description        pkg.Patch[string] `json:"description"`
	AccessCode         pkg.Patch[string] `json:"accessCode"`
	GenerateAccessCode bool              `json:"generateAccessCode"`
}

// communityFields 校验用的完整视图
type communityFields struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Slug        string  `json:"slug" validate:"omitempty,min=2,max=100,slug"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	AccessCode  *string `json:"accessCode" validate:"omitempty,min=6,max=50,alphanum"`
}

func (s *CommunityService) emit(ctx context.Context, e Event) {
	if s.events != nil {
		_ = s.events.Send(ctx, e)
	}
}

func (s *CommunityService) Create(ctx context.Context, in CommunityInput) (*model.Community, error) {
	f := communityFields{
		Name:        strings.TrimSpace(in.Name),
		Description: pkg.TrimOrNil(in.Description),
		AccessCode:  pkg.TrimOrNil(in.AccessCode),
	}
	if in.GenerateAccessCode && f.AccessCode == nil {
		code, err := pkg.RandAlnum(pkg.DefaultAccessCode)
		if err != nil {
			return nil, fmt.Errorf("generate access code: %w", err)
		}
		f.AccessCode = &code
	}
	if err := pkg.Validate(f); err != nil {
		return nil, err
	}

	c := &model.Community{
		Name:        f.Name,
		Description: f.Description,
		AccessCode:  f.AccessCode,
	}
	if err := s.allocate(ctx, c, pkg.Slugify(f.Name, s.now())); err != nil {
		return nil, err
	}

	s.emit(ctx, communityEvent(EventCommunityCreated, c))
	return c, nil
}

// allocate 依次尝试 base, base-1, base-2 ... 并插入。
// 探测只是快路径，并发同名创建时以唯一索引为准，冲突后换下一个后缀重试。
func (s *CommunityService) allocate(ctx context.Context, c *model.Community, base string) error {
	conflicts := 0
	for n := 0; ; n++ {
		candidate := pkg.SlugCandidate(base, n)
		taken, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return fmt.Errorf("probe slug: %w", err)
		}
		if taken {
			continue
		}

		c.Slug = candidate
		err = s.repo.Create(ctx, c)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create community: %w", err)
		}
		conflicts++
		if conflicts > maxSlugConflicts {
			return ErrSlugTaken
		}
	}
}

func (s *CommunityService) List(ctx context.Context) ([]model.Community, error) {
	return s.repo.ListWithCounts(ctx)
}

func (s *CommunityService) GetByID(ctx context.Context, id string) (*model.Community, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommunityNotFound
	}
	return c, err
}

func (s *CommunityService) GetBySlug(ctx context.Context, slug string) (*model.Community, error) {
	c, err := s.repo.FindBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommunityNotFound
	}
	return c, err
}

// Update 先把改动合并到当前值上再整体校验，只写回真正出现的字段
func (s *CommunityService) Update(ctx context.Context, id string, in CommunityUpdate) (*model.Community, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f := communityFields{
		Name:        cur.Name,
		Slug:        cur.Slug,
		Description: cur.Description,
		AccessCode:  cur.AccessCode,
	}
	cols := map[string]any{}

	if in.Name.Set {
		f.Name = ""
		if in.Name.Value != nil {
			f.Name = strings.TrimSpace(*in.Name.Value)
		}
		cols["name"] = f.Name
	}
	if in.Slug.Set {
		f.Slug = ""
		if in.Slug.Value != nil {
			f.Slug = strings.TrimSpace(*in.Slug.Value)
		}
		if f.Slug == "" {
			return nil, &pkg.ValidationError{Fields: []pkg.FieldError{{Field: "slug", Message: "slug为必填字段"}}}
		}
		if f.Slug != cur.Slug {
			cols["slug"] = f.Slug
		}
	}
	if in.Description.Set {
		f.Description = pkg.TrimOrNil(in.Description.Value)
		cols["description"] = f.Description
	}
	if in.AccessCode.Set {
		f.AccessCode = pkg.TrimOrNil(in.AccessCode.Value)
		cols["access_code"] = f.AccessCode
	}
	if in.GenerateAccessCode && f.AccessCode == nil {
		code, err := pkg.RandAlnum(pkg.DefaultAccessCode)
		if err != nil {
			return nil, fmt.Errorf("generate access code: %w", err)
		}
		f.AccessCode = &code
		cols["access_code"] = f.AccessCode
	}

	if err := pkg.Validate(f); err != nil {
		return nil, err
	}

	if slug, ok := cols["slug"].(string); ok {
		taken, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("probe slug: %w", err)
		}
		if taken {
			return nil, ErrSlugTaken
		}
	}

	if err := s.repo.Update(ctx, id, cols); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("update community: %w", err)
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(cols) > 0 {
		s.emit(ctx, communityEvent(EventCommunityUpdated, updated))
	}
	return updated, nil
}

// Delete 社区和它的全部成员在一个事务里删除，返回删除的成员数
func (s *CommunityService) Delete(ctx context.Context, id string) (int64, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	removed, err := s.repo.DeleteCascade(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrCommunityNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("delete community: %w", err)
	}

	e := communityEvent(EventCommunityDeleted, cur)
	e.Removed = removed
	s.emit(ctx, e)
	return removed, nil
}
