package data

import (
	"time"
)

// Article represents a single newsletter article.
//
// Slug is assigned once at creation time and never changes afterwards; it is
// the public identifier used in URLs, distinct from the numeric ID.
type Article struct {
	ID          int64     `db:"id" json:"id"`
	Slug        string    `db:"slug" json:"slug"`
	Title       string    `db:"title" json:"title"`
	Subtitle    string    `db:"subtitle" json:"subtitle"`
	Content     string    `db:"content" json:"content"`
	Author      string    `db:"author" json:"author"`
	Tag         string    `db:"tag" json:"tag"`
	ImageURL    string    `db:"image_url" json:"image_url"`
	ReadTime    string    `db:"read_time" json:"read_time"`
	PublishedAt time.Time `db:"published_at" json:"published_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Comment is a visitor comment attached to an article. The author email is
// collected for moderation purposes and is never rendered as a link.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	ArticleID int64     `db:"article_id" json:"article_id"`
	UserName  string    `db:"user_name" json:"user_name"`
	UserEmail string    `db:"user_email" json:"user_email"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Subscriber is a newsletter subscription record. PolicyAgreement must be
// true before the row is ever written.
type Subscriber struct {
	ID              int64     `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`
	PolicyAgreement bool      `db:"policy_agreement" json:"policy_agreement"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Cover is a named image slot keyed by (category, name), used for the footer
// photo and the homepage project tiles. One row per pair is authoritative.
type Cover struct {
	ID        int64     `db:"id" json:"id"`
	Category  string    `db:"category" json:"category"`
	Name      string    `db:"name" json:"name"`
	Image     string    `db:"image" json:"image"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// User is an editor account for password sign-in. Role grants live in the
// casbin rule table, not here.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
