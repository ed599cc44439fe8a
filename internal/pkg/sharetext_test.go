package pkg

import "testing"

func TestShareText(t *testing.T) {
	work := "做开源"
	got := ShareText(ShareCard{Name: "张三", Location: "上海", Profession: "工程师", CurrentWork: &work})
	want := "【名字】张三\n【常住地】上海\n【职业/行业】工程师\n\n【正在做的事情】\n做开源\n"
	if got != want {
		t.Fatalf("ShareText = %q, want %q", got, want)
	}

	empty := ""
	got = ShareText(ShareCard{Name: "a", Location: "b", Profession: "c", SeekTopics: &empty})
	if got != "【名字】a\n【常住地】b\n【职业/行业】c\n" {
		t.Fatalf("empty optional block rendered: %q", got)
	}
}
