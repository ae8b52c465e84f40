package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// ReceiptFields 从收据OCR文本中提取出的候选字段
// 三个字段彼此独立，全部为空说明OCR文本里没有可识别的结构，不算错误
type ReceiptFields struct {
	Amount    string   `json:"amount"`     // 两位小数的金额字符串
	ReceiptID string   `json:"receipt_id"` // UPI交易号
	Date      string   `json:"date"`       // ISO格式日期 YYYY-MM-DD
	Warnings  []string `json:"warnings"`   // 提取过程中的提示信息
}

var (
	// 带货币标记的金额：₹ / Rs / INR + 数字（可含千分位和小数）
	reReceiptAmount = regexp.MustCompile(`(?:₹|Rs\.?|INR)\s?([0-9][0-9,]*(?:\.[0-9]+)?)`)
	// UPI 交易号标签后的数字
	reReceiptUPIID = regexp.MustCompile(`(?i)UPI\s*(?:transaction|txn)\.?\s*ID\s*[:\-]?\s*(\d+)`)
	// 月份名 + 日 + 年，如 "Jan 22, 2025"、"22 January 2025" 由外部解析器兜底
	reReceiptDate = regexp.MustCompile(`(?i)\b(Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})`)
)

// ExtractReceiptFields 在OCR输出文本上做启发式字段提取
// 纯函数，尽力而为：识别不出的字段留空并附提示，不返回错误
func ExtractReceiptFields(ocrText string) ReceiptFields {
	fields := ReceiptFields{}

	if m := reReceiptAmount.FindStringSubmatch(ocrText); m != nil {
		raw := strings.ReplaceAll(m[1], ",", "")
		if amount, err := decimal.NewFromString(raw); err == nil {
			fields.Amount = amount.StringFixed(2)
		} else {
			fields.Warnings = append(fields.Warnings, fmt.Sprintf("amount-like text %q could not be parsed as a number", m[1]))
		}
	}

	if m := reReceiptUPIID.FindStringSubmatch(ocrText); m != nil {
		fields.ReceiptID = m[1]
	}

	if m := reReceiptDate.FindStringSubmatch(ocrText); m != nil {
		parsed, err := dateparse.ParseAny(m[0])
		if err != nil {
			fields.Warnings = append(fields.Warnings, fmt.Sprintf("date-like text %q could not be parsed", m[0]))
		} else {
			fields.Date = parsed.Format(time.DateOnly)
		}
	}

	return fields
}
