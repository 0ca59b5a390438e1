package dto

import "github.com/rpupo63/blog-api/models"

// Link is a named reference to a related resource.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Links keeps insertion order and allows the same rel more than once.
type Links []Link

// ByRel returns every link registered under rel, in order.
func (l Links) ByRel(rel string) []Link {
	var matched []Link
	for _, link := range l {
		if link.Rel == rel {
			matched = append(matched, link)
		}
	}
	return matched
}

// Self returns the href of the first self link, or "".
func (l Links) Self() string {
	for _, link := range l {
		if link.Rel == "self" {
			return link.Href
		}
	}
	return ""
}

type BlogModel struct {
	ID          uint64 `json:"id"`
	BlogTitle   string `json:"blogTitle"`
	Description string `json:"description"`
	Links       Links  `json:"links"`
}

type PostModel struct {
	ID             uint64      `json:"id"`
	PostTitle      string      `json:"postTitle"`
	PostBody       string      `json:"postBody"`
	PostConclusion *string     `json:"postConclusion"`
	Author         string      `json:"author"`
	PublishedOn    models.Date `json:"publishedOn"`
	Links          Links       `json:"links"`
}

type BlogCollection struct {
	Links   Links       `json:"links"`
	Content []BlogModel `json:"content"`
}

func (c BlogCollection) IsEmpty() bool {
	return len(c.Content) == 0
}

type PostCollection struct {
	Links   Links       `json:"links"`
	Content []PostModel `json:"content"`
}

func (c PostCollection) IsEmpty() bool {
	return len(c.Content) == 0
}
