package pkg

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

const MaxSlugBase = 90

var (
	SlugPattern  = regexp.MustCompile(`^[a-z0-9-]+$`)
	slugIllegal  = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashRuns = regexp.MustCompile(`-{2,}`)
)

// Slugify 把社区名转成 [a-z0-9-]+；转写后为空时退回 community-<毫秒时间戳>
func Slugify(name string, now time.Time) string {
	s := slug.Make(strings.TrimSpace(name))
	s = strings.ToLower(s)
	s = slugIllegal.ReplaceAllString(s, "-")
	s = slugDashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxSlugBase {
		s = strings.TrimRight(s[:MaxSlugBase], "-")
	}
	if s == "" {
		return fmt.Sprintf("community-%d", now.UnixMilli())
	}
	return s
}

// SlugCandidate 第 n 次探测的候选值：n=0 为 base，其余为 base-n
func SlugCandidate(base string, n int) string {
	if n <= 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
