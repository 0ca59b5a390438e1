package models

// Blog groups posts under a unique title
type Blog struct {
	ID          uint64 `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	BlogTitle   string `json:"blogTitle" db:"blog_title" gorm:"column:blog_title;type:text;not null;uniqueIndex:idx_blogs_blog_title"`
	Description string `json:"description" db:"description" gorm:"column:description;type:text;not null"`
}

func (Blog) TableName() string {
	return "blogs"
}
