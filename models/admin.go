package models

// Admin 表示系统管理员账户
type Admin struct {
	BaseModel
	Username string `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // bcrypt 哈希
	Role     string `gorm:"type:varchar(20);default:'admin'" json:"role"`
	Status   string `gorm:"type:varchar(20);default:'active'" json:"status"` // active, inactive
}
