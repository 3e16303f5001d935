package utils

import "unicode/utf8"

// TruncateLines 将文本按每行最多 lineRunes 个字符切分，最多保留 maxLines 行
// 被截断时最后一行以 "…" 结尾（卡片描述的两行截断）
func TruncateLines(s string, lineRunes, maxLines int) []string {
	if s == "" || lineRunes <= 0 || maxLines <= 0 {
		return nil
	}

	runes := []rune(s)
	lines := make([]string, 0, maxLines)
	for len(runes) > 0 && len(lines) < maxLines {
		n := lineRunes
		if n > len(runes) {
			n = len(runes)
		}
		lines = append(lines, string(runes[:n]))
		runes = runes[n:]
	}

	if len(runes) > 0 {
		last := []rune(lines[len(lines)-1])
		if len(last) >= lineRunes {
			last = last[:lineRunes-1]
		}
		lines[len(lines)-1] = string(last) + "…"
	}
	return lines
}

// RuneCount 返回字符串的字符数
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}
