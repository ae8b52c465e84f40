package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/maheshvali1990/Society-maintenance-tracker/config"
	"github.com/maheshvali1990/Society-maintenance-tracker/utils"
)

// 聊天导出中的附件标记，子串匹配，大小写不敏感
const (
	markerAttached     = "attached:"
	markerImageOmitted = "image omitted"
	markerMediaOmitted = "media omitted"
)

// 消息起始行：<时间戳> - <发送者>: <正文>
var reMessageStart = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4},?\s+\d{1,2}:\d{2}(?::\d{2})?(?:\s?[apAP]\.?[mM]\.?)?)\s+-\s+([^:]+?):\s?(.*)$`)

// ChatMatch 聊天记录中识别出的一条缴费凭证
type ChatMatch struct {
	HouseholdID     uint   `json:"household_id"`
	FlatNumber      string `json:"flat_number"`
	Wing            string `json:"wing"`
	OwnerRenterName string `json:"owner_renter_name"`
	PaymentID       uint   `json:"payment_id"`
	PaymentMonth    int    `json:"payment_month"`
	PaymentYear     int    `json:"payment_year"`
}

// ChatExtractionResult 整次扫描的结果：匹配项与逐条错误，两者都按出现顺序排列
type ChatExtractionResult struct {
	Matches []ChatMatch `json:"matches"`
	Errors  []string    `json:"errors"`
}

// InterfaceChatService 定义聊天记录提取服务接口
type InterfaceChatService interface {
	ExtractReceipts(r io.Reader) (*ChatExtractionResult, error)
}

// ChatService 从群聊导出文本中提取缴费凭证
type ChatService struct {
	Config     *config.Config
	Households InterfaceHouseholdService
	Payments   InterfacePaymentService
}

// NewChatService 创建一个新的聊天记录提取服务
func NewChatService(cfg *config.Config, households InterfaceHouseholdService, payments InterfacePaymentService) InterfaceChatService {
	return &ChatService{
		Config:     cfg,
		Households: households,
		Payments:   payments,
	}
}

// pendingMessage 正在累积的多行消息
type pendingMessage struct {
	timestamp string
	sender    string
	body      strings.Builder
}

// ExtractReceipts 对聊天导出做单次前向扫描
// 每条消息的问题只记入 Errors，扫描总会跑完；返回 error 仅表示读取失败
func (s *ChatService) ExtractReceipts(r io.Reader) (*ChatExtractionResult, error) {
	result := &ChatExtractionResult{
		Matches: []ChatMatch{},
		Errors:  []string{},
	}

	var current *pendingMessage
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if m := reMessageStart.FindStringSubmatch(line); m != nil {
			// 新消息开始，先结算上一条
			s.finalizeMessage(current, result)
			current = &pendingMessage{timestamp: m[1], sender: strings.TrimSpace(m[2])}
			current.body.WriteString(m[3])
		} else if current != nil {
			// 不匹配的行是上一条消息的续行
			current.body.WriteString("\n")
			current.body.WriteString(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat export: %w", err)
	}

	// 文件末尾同样触发结算，否则最后一条消息会丢
	s.finalizeMessage(current, result)

	return result, nil
}

// finalizeMessage 结算一条累积完成的消息
func (s *ChatService) finalizeMessage(msg *pendingMessage, result *ChatExtractionResult) {
	if msg == nil {
		return
	}

	body := msg.body.String()
	lower := strings.ToLower(body)
	hasAttached := strings.Contains(lower, markerAttached)
	hasImageOmitted := strings.Contains(lower, markerImageOmitted)
	hasMediaOmitted := strings.Contains(lower, markerMediaOmitted)
	if !hasAttached && !hasImageOmitted && !hasMediaOmitted {
		return
	}

	// 外部日期解析器按日在前消歧
	ts, err := dateparse.ParseAny(normalizeChatTimestamp(msg.timestamp), dateparse.PreferMonthFirst(false))
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("could not parse timestamp %q (sender %s), message skipped", msg.timestamp, msg.sender))
		return
	}

	caption := deriveCaption(body, lower, hasAttached, hasMediaOmitted, hasImageOmitted)
	id := utils.ParseIdentifier(caption)
	if id.FlatNumber == "" {
		// 识别不出住户信息是常态噪音，静默跳过
		return
	}

	household, err := s.Households.FindByFlatWing(id.FlatNumber, id.Wing)
	if err != nil {
		if errors.Is(err, ErrHouseholdNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("no household found for flat %q wing %q (caption %q)", id.FlatNumber, id.Wing, strings.TrimSpace(caption)))
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("household lookup failed for flat %q wing %q: %v", id.FlatNumber, id.Wing, err))
		}
		return
	}

	// 确保该住户该账期的缴费记录存在，这是扫描的副作用而不只是读取
	payment, err := s.Payments.GetOrCreatePayment(household.ID, int(ts.Month()), ts.Year())
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("could not prepare payment record for %s %d-%02d: %v", household.Label(), ts.Year(), int(ts.Month()), err))
		return
	}

	result.Matches = append(result.Matches, ChatMatch{
		HouseholdID:     household.ID,
		FlatNumber:      household.FlatNumber,
		Wing:            household.WingValue(),
		OwnerRenterName: household.OwnerRenterName,
		PaymentID:       payment.ID,
		PaymentMonth:    payment.PaymentMonth,
		PaymentYear:     payment.PaymentYear,
	})
}

// deriveCaption 从消息正文中推导附件说明文字
func deriveCaption(body, lower string, hasAttached, hasMediaOmitted, hasImageOmitted bool) string {
	switch {
	case hasAttached:
		// "<attached: IMG-0001.jpg> Flat A-101" 取最后一个 '>' 之后的部分
		if i := strings.LastIndex(body, ">"); i >= 0 {
			return body[i+1:]
		}
		return body
	case hasMediaOmitted:
		i := strings.Index(lower, markerMediaOmitted)
		return body[i+len(markerMediaOmitted):]
	case hasImageOmitted:
		return ""
	default:
		return body
	}
}

// normalizeChatTimestamp 去掉导出时间戳里的逗号并压缩空白，便于外部解析器处理
func normalizeChatTimestamp(ts string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(ts, ",", " ")), " ")
}
