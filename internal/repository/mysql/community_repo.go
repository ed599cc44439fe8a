package mysql

import (
	"context"

	"Lee_Directory/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

const memberCountSelect = "communities.*, (SELECT COUNT(*) FROM members WHERE members.community_id = communities.id) AS member_count"

// Create 依赖 slug 唯一索引兜底；冲突时返回 gorm.ErrDuplicatedKey
func (r *CommunityRepository) Create(ctx context.Context, c *model.Community) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *CommunityRepository) FindByID(ctx context.Context, id string) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&community).Error
	return &community, err
}

func (r *CommunityRepository) FindBySlug(ctx context.Context, slug string) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&community).Error
	return &community, err
}

// SlugExists 点查 slug 是否已被占用
func (r *CommunityRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Community{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

// ListWithCounts 全部社区及成员数，按创建时间倒序
func (r *CommunityRepository) ListWithCounts(ctx context.Context) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.WithContext(ctx).
		Select(memberCountSelect).
		Order("communities.created_at desc").
		Find(&list).Error
	return list, err
}

// Update 只写入 cols 中列出的列
func (r *CommunityRepository) Update(ctx context.Context, id string, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&model.Community{}).
		Where("id = ?", id).
		Updates(cols).Error
}

// DeleteCascade 同一事务内删除成员和社区；社区不存在时返回 gorm.ErrRecordNotFound
func (r *CommunityRepository) DeleteCascade(ctx context.Context, id string) (int64, error) {
	var removed int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("community_id = ?", id).Delete(&model.Member{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		res = tx.Where("id = ?", id).Delete(&model.Community{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return removed, err
}

func (r *CommunityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Community{}).Count(&count).Error
	return count, err
}
