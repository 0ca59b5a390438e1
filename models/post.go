package models

// Post is a single article owned by exactly one Blog
type Post struct {
	ID             uint64  `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	BlogID         uint64  `json:"blogId" db:"blog_id" gorm:"column:blog_id;not null;index:idx_posts_blog_id"`
	Blog           *Blog   `json:"-" gorm:"foreignKey:BlogID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	PostTitle      string  `json:"postTitle" db:"post_title" gorm:"column:post_title;type:text;not null"`
	PostBody       string  `json:"postBody" db:"post_body" gorm:"column:post_body;type:text;not null"`
	PostConclusion *string `json:"postConclusion,omitempty" db:"post_conclusion" gorm:"column:post_conclusion;type:text"`
	Author         string  `json:"author" db:"author" gorm:"column:author;type:text;not null;index:idx_posts_author"`
	PublishedOn    Date    `json:"publishedOn" db:"published_on" gorm:"column:published_on;type:date;not null"`
}

func (Post) TableName() string {
	return "posts"
}

// SortableColumns maps the JSON property names a client may order posts by to their columns.
var SortableColumns = map[string]string{
	"id":             "id",
	"postTitle":      "post_title",
	"postBody":       "post_body",
	"postConclusion": "post_conclusion",
	"author":         "author",
	"publishedOn":    "published_on",
}
