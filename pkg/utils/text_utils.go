package utils

import (
	"strings"
	"unicode/utf8"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - measure: 测量一行文本宽度（像素）
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行），至少一行
//
// 换行规则:
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，按字符强制断行
func WrapText(textStr string, measure func(string) float64, maxWidth float64) []string {
	if textStr == "" || measure == nil || maxWidth <= 0 || measure(textStr) <= maxWidth {
		return []string{textStr}
	}

	var (
		lines []string
		line  string
	)
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if measure(candidate) <= maxWidth {
			line = candidate
			continue
		}

		if line != "" {
			lines = append(lines, line)
			line = ""
		}
		if measure(word) <= maxWidth {
			line = word
			continue
		}

		// 单词本身超宽，按字符断开
		for len(word) > 0 {
			r, size := utf8.DecodeRuneInString(word)
			char := string(r)
			if line != "" && measure(line+char) > maxWidth {
				lines = append(lines, line)
				line = ""
			}
			line += char
			word = word[size:]
		}
	}

	if line != "" {
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return []string{textStr}
	}
	return lines
}
