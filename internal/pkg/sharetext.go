package pkg

import "strings"

type ShareCard struct {
	Name        string
	Location    string
	Profession  string
	CurrentWork *string
	ShareTopics *string
	SeekTopics  *string
}

// ShareText 生成适合即时通讯转发的成员名片文本
func ShareText(c ShareCard) string {
	var b strings.Builder
	b.WriteString("【名字】" + c.Name + "\n")
	b.WriteString("【常住地】" + c.Location + "\n")
	b.WriteString("【职业/行业】" + c.Profession + "\n")
	writeBlock(&b, "正在做的事情", c.CurrentWork)
	writeBlock(&b, "希望分享的内容", c.ShareTopics)
	writeBlock(&b, "希望收获的内容", c.SeekTopics)
	return b.String()
}

func writeBlock(b *strings.Builder, title string, v *string) {
	if v == nil || *v == "" {
		return
	}
	b.WriteString("\n【" + title + "】\n" + *v + "\n")
}
