package models

// Household 表示小区内的一个住户单元
// 唯一身份由 (flat_number, wing) 组合确定，wing 为 NULL 表示无翼楼
type Household struct {
	BaseModel
	FlatNumber      string  `gorm:"type:varchar(20);not null;uniqueIndex:idx_flat_wing" json:"flat_number"` // 门牌号，入库前统一大写并去掉连字符
	Wing            *string `gorm:"type:varchar(10);uniqueIndex:idx_flat_wing" json:"wing"`                 // 翼楼标识，如 "A"、"B"，可为空
	OwnerRenterName string  `gorm:"type:varchar(100);not null" json:"owner_renter_name"`                    // 业主或租户姓名

	// 关联关系
	Payments []Payment `gorm:"foreignKey:HouseholdID;constraint:OnDelete:CASCADE" json:"payments,omitempty"` // 住户的缴费记录（一对多）
}

// WingValue 返回翼楼标识，无翼楼时返回空字符串
func (h *Household) WingValue() string {
	if h.Wing == nil {
		return ""
	}
	return *h.Wing
}

// Label 返回 "A-101" 形式的展示名
func (h *Household) Label() string {
	if h.Wing == nil {
		return h.FlatNumber
	}
	return *h.Wing + "-" + h.FlatNumber
}
