package pkg

import (
	"io"
	"strings"
)

// UTF8BOM 让表格软件按 UTF-8 识别中文
const UTF8BOM = "\uFEFF"

// EscapeCSV 含逗号、双引号或换行的值用双引号包裹，内部双引号加倍
func EscapeCSV(v string) string {
	if strings.ContainsAny(v, ",\"\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// WriteCSV 写出带 BOM 的表格，行之间用 \n 连接
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	var b strings.Builder
	b.WriteString(UTF8BOM)
	writeRow(&b, header)
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(&b, row)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, row []string) {
	for i, v := range row {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EscapeCSV(v))
	}
}
