package input

import "strings"

// DefaultAffirmatives 默认的肯定回答集合
var DefaultAffirmatives = []string{"yes", "y", "yeah", "yea", "yep"}

// AffirmativeSet 肯定回答集合（大小写不敏感，忽略首尾空白）
type AffirmativeSet map[string]struct{}

// NewAffirmativeSet 创建集合；tokens 为空时使用 DefaultAffirmatives
func NewAffirmativeSet(tokens ...string) AffirmativeSet {
	if len(tokens) == 0 {
		tokens = DefaultAffirmatives
	}
	set := make(AffirmativeSet, len(tokens))
	for _, tok := range tokens {
		tok = normalize(tok)
		if tok == "" {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// Contains 判断回答是否属于肯定集合；空回答一律视为否定
func (s AffirmativeSet) Contains(answer string) bool {
	answer = normalize(answer)
	if answer == "" {
		return false
	}
	_, ok := s[answer]
	return ok
}

// IsAffirmative 使用默认集合判断
func IsAffirmative(answer string) bool {
	return defaultSet.Contains(answer)
}

var defaultSet = NewAffirmativeSet()

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
