package mysql

import (
	"context"
	"strings"
	"time"

	"Lee_Directory/internal/model"

	"gorm.io/gorm"
)

type MemberRepository struct {
	DB *gorm.DB
}

// MemberFilter 管理端列表筛选；空值表示不过滤
type MemberFilter struct {
	CommunityID string
	Search      string
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func withCommunity(db *gorm.DB) *gorm.DB {
	return db.Preload("Community", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "slug")
	})
}

func (r *MemberRepository) Create(ctx context.Context, m *model.Member) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (*model.Member, error) {
	var m model.Member
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error
	return &m, err
}

// FindWithCommunity 带上所属社区的 id/name/slug
func (r *MemberRepository) FindWithCommunity(ctx context.Context, id string) (*model.Member, error) {
	var m model.Member
	err := withCommunity(r.DB.WithContext(ctx)).Where("id = ?", id).First(&m).Error
	return &m, err
}

// FindInCommunity 成员必须属于该社区，否则视为不存在
func (r *MemberRepository) FindInCommunity(ctx context.Context, communityID, id string) (*model.Member, error) {
	var m model.Member
	err := r.DB.WithContext(ctx).
		Where("id = ? AND community_id = ?", id, communityID).
		First(&m).Error
	return &m, err
}

func (r *MemberRepository) ListByCommunity(ctx context.Context, communityID string) ([]model.Member, error) {
	var list []model.Member
	err := r.DB.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// Search 名字/所在地/职业的不区分大小写子串匹配
func (r *MemberRepository) Search(ctx context.Context, f MemberFilter) ([]model.Member, error) {
	q := withCommunity(r.DB.WithContext(ctx))
	if f.CommunityID != "" {
		q = q.Where("community_id = ?", f.CommunityID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		q = q.Where("(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(location) LIKE ? ESCAPE '!' OR LOWER(profession) LIKE ? ESCAPE '!')",
			pattern, pattern, pattern)
	}
	var list []model.Member
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *MemberRepository) Update(ctx context.Context, id string, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&model.Member{}).
		Where("id = ?", id).
		Updates(cols).Error
}

// Delete 返回受影响行数，0 表示不存在
func (r *MemberRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Member{})
	return res.RowsAffected, res.Error
}

func (r *MemberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Member{}).Count(&count).Error
	return count, err
}

func (r *MemberRepository) CountByCommunity(ctx context.Context, communityID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Member{}).
		Where("community_id = ?", communityID).
		Count(&count).Error
	return count, err
}

func (r *MemberRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Member{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

// Recent 最近创建的 n 条，带社区信息
func (r *MemberRepository) Recent(ctx context.Context, n int) ([]model.Member, error) {
	var list []model.Member
	err := withCommunity(r.DB.WithContext(ctx)).
		Order("created_at DESC").
		Limit(n).
		Find(&list).Error
	return list, err
}

// ListAllWithCommunity 导出用
func (r *MemberRepository) ListAllWithCommunity(ctx context.Context) ([]model.Member, error) {
	return r.Search(ctx, MemberFilter{})
}
