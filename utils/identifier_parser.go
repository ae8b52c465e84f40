package utils

import (
	"regexp"
	"strings"
)

// Identifier 表示从附件说明文字中解析出的住户标识
// 空字符串表示对应字段未识别出来，调用方应按"未匹配"处理而不是报错
type Identifier struct {
	FlatNumber string `json:"flat_number"` // 规范化后的门牌号（去连字符、大写）
	Wing       string `json:"wing"`        // 规范化后的翼楼标识（大写）
}

// parseState 规则链的中间状态
// rawFlat 保留门牌号在原文中的形态，供后续规则做位置回查
type parseState struct {
	caption string
	flat    string
	rawFlat string
	wing    string
	rawWing string
}

// captionRule 单条解析规则，按顺序求值
// when 为空表示无条件执行；apply 只在找到匹配时填充字段
type captionRule struct {
	name  string
	when  func(s *parseState) bool
	apply func(s *parseState)
}

var (
	// "flat"、"flat no"、"flat number" 等标签后跟的号码
	reFlatLabel = regexp.MustCompile(`(?i)flat\s*(?:no\.?|number)?\s*[-:#.]?\s*(\d+(?:-\d+)*)`)
	// "wing" 标签后跟的字母
	reWingLabel = regexp.MustCompile(`(?i)wing\s*[-:#.]?\s*([a-zA-Z]+)`)
	// 组合写法：单个字母 + 可选分隔符 + 数字，如 "A-101"、"B 12"
	reWingThenFlat = regexp.MustCompile(`\b([A-Za-z])[\s\-/]?(\d+)\b`)
	// 组合写法：单个字母紧跟三位数字，前后以空白或串边界为界，如 "D601"
	reLetterThreeDigits = regexp.MustCompile(`(?:^|\s)([A-Za-z])(\d{3})(?:\s|$)`)
	// "payment for 101 A" 写法，标签部分大小写不敏感
	rePaymentFor = regexp.MustCompile(`(?i)payment\s+for\s+(\d+)\s*([A-Za-z])\b`)
	// 兜底：以空白或非单词字符为界的字母+三位数字
	reBareLetterDigits = regexp.MustCompile(`(?:^|[\s\W])([A-Za-z])(\d{3})(?:[\s\W]|$)`)
)

// captionRules 标识解析规则链，顺序即优先级
var captionRules = []captionRule{
	{
		name: "flat-label",
		apply: func(s *parseState) {
			if m := reFlatLabel.FindStringSubmatch(s.caption); m != nil {
				s.rawFlat = m[1]
				s.flat = normalizeFlatNumber(m[1])
			}
		},
	},
	{
		name: "wing-label",
		apply: func(s *parseState) {
			if m := reWingLabel.FindStringSubmatch(s.caption); m != nil {
				s.rawWing = m[1]
				s.wing = strings.ToUpper(m[1])
			}
		},
	},
	{
		// 两个字段都没找到时，在原始文本上尝试组合写法，先匹配者生效
		name: "combined",
		when: func(s *parseState) bool { return s.flat == "" && s.wing == "" },
		apply: func(s *parseState) {
			if m := reWingThenFlat.FindStringSubmatch(s.caption); m != nil {
				s.wing = strings.ToUpper(m[1])
				s.rawFlat = m[2]
				s.flat = normalizeFlatNumber(m[2])
				return
			}
			if m := reLetterThreeDigits.FindStringSubmatch(s.caption); m != nil {
				s.wing = strings.ToUpper(m[1])
				s.rawFlat = m[2]
				s.flat = normalizeFlatNumber(m[2])
			}
		},
	},
	{
		// 只找到门牌号时，回查紧挨在号码前面的单个字母作为翼楼
		name: "wing-from-flat",
		when: func(s *parseState) bool { return s.flat != "" && s.wing == "" },
		apply: func(s *parseState) {
			re := regexp.MustCompile(`(?:^|[\s,.;])([A-Za-z])[\s\-/]?` + regexp.QuoteMeta(s.rawFlat))
			if m := re.FindStringSubmatch(s.caption); m != nil {
				s.wing = strings.ToUpper(m[1])
			}
		},
	},
	{
		// 只找到翼楼时，取紧跟在翼楼标识后面的数字作为门牌号
		name: "flat-from-wing",
		when: func(s *parseState) bool { return s.wing != "" && s.flat == "" },
		apply: func(s *parseState) {
			re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(s.rawWing) + `[\s\-/]?(\d+)`)
			if m := re.FindStringSubmatch(s.caption); m != nil {
				s.rawFlat = m[1]
				s.flat = normalizeFlatNumber(m[1])
			}
		},
	},
	{
		name: "payment-for",
		when: func(s *parseState) bool { return s.flat == "" && s.wing == "" },
		apply: func(s *parseState) {
			if m := rePaymentFor.FindStringSubmatch(s.caption); m != nil {
				s.rawFlat = m[1]
				s.flat = normalizeFlatNumber(m[1])
				s.wing = strings.ToUpper(m[2])
			}
		},
	},
	{
		name: "bare-letter-digits",
		when: func(s *parseState) bool { return s.flat == "" && s.wing == "" },
		apply: func(s *parseState) {
			if m := reBareLetterDigits.FindStringSubmatch(s.caption); m != nil {
				s.wing = strings.ToUpper(m[1])
				s.rawFlat = m[2]
				s.flat = normalizeFlatNumber(m[2])
			}
		},
	},
}

// ParseIdentifier 从附件说明文字中解析 (门牌号, 翼楼)
// 两个字段都可能为空，这不是错误；调用方把未识别当作"无匹配"处理
func ParseIdentifier(caption string) Identifier {
	state := &parseState{caption: caption}
	if strings.TrimSpace(caption) == "" {
		return Identifier{}
	}

	for _, rule := range captionRules {
		if rule.when != nil && !rule.when(state) {
			continue
		}
		rule.apply(state)
	}

	return Identifier{FlatNumber: state.flat, Wing: state.wing}
}

// normalizeFlatNumber 去掉号码中的连字符并统一大写
func normalizeFlatNumber(raw string) string {
	return strings.ToUpper(strings.ReplaceAll(raw, "-", ""))
}
