package model

// Slide is a promotional banner managed by admins
type Slide struct {
	BaseModel
	Title    string `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Subtitle string `gorm:"type:varchar(255)" json:"subtitle"`
	ImageURL string `gorm:"type:text;not null" json:"image_url" validate:"required,url"`
	CtaLabel string `gorm:"type:varchar(100)" json:"cta_label"`
	CtaHref  string `gorm:"type:text" json:"cta_href"`
	Order    int    `gorm:"column:sort_order;default:0" json:"order"`
	IsActive bool   `gorm:"not null" json:"is_active"`
}
