package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"Lee_Directory/internal/model"
	"Lee_Directory/internal/pkg"
	"Lee_Directory/internal/repository/mysql"
)

var exportHeader = []string{"ID", "姓名", "所在地", "职业/行业", "正在做的事情", "希望分享的内容", "希望收获的内容", "所属社区", "加入时间"}

const exportTimeLayout = "2006-01-02 15:04:05"

type ExportService struct {
	memberRepo *mysql.MemberRepository
	now        func() time.Time
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{
		memberRepo: &mysql.MemberRepository{DB: db},
		now:        time.Now,
	}
}

// Filename members-<毫秒时间戳>.csv
func (s *ExportService) Filename() string {
	return fmt.Sprintf("members-%d.csv", s.now().UnixMilli())
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func exportRow(m model.Member) []string {
	community := ""
	if m.Community != nil {
		community = m.Community.Name
	}
	return []string{
		m.ID,
		m.Name,
		m.Location,
		m.Profession,
		deref(m.CurrentWork),
		deref(m.ShareTopics),
		deref(m.SeekTopics),
		community,
		m.CreatedAt.Local().Format(exportTimeLayout),
	}
}

// WriteCSV 全部成员，带 BOM
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	list, err := s.memberRepo.ListAllWithCommunity(ctx)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	rows := make([][]string, 0, len(list))
	for _, m := range list {
		rows = append(rows, exportRow(m))
	}
	return pkg.WriteCSV(w, exportHeader, rows)
}
