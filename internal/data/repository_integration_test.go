//go:build integration

package data

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// setupRepoTest creates a new in-memory SQLite database with the content
// schema for testing. It returns the db and a teardown function to be deferred.
func setupRepoTest(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	// Use a non-shared in-memory database for complete test isolation.
	dsn := "file::memory:"
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	schema := `
	CREATE TABLE articles (
		id INTEGER PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		subtitle TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		tag TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		read_time TEXT NOT NULL DEFAULT '',
		published_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE comments (
		id INTEGER PRIMARY KEY,
		article_id INTEGER NOT NULL,
		user_name TEXT NOT NULL,
		user_email TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (article_id) REFERENCES articles(id)
	);
	CREATE TABLE subscribers (
		id INTEGER PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		policy_agreement BOOLEAN NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE covers (
		id INTEGER PRIMARY KEY,
		category TEXT NOT NULL,
		name TEXT NOT NULL,
		image TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (category, name)
	);`
	db.MustExec(schema)

	teardown := func() {
		db.Close()
	}

	return db, teardown
}

func mustCreateArticle(t *testing.T, repo *SQLArticleRepository, slug, tag string, published time.Time) *Article {
	t.Helper()
	article := &Article{
		Slug:        slug,
		Title:       slug,
		Tag:         tag,
		PublishedAt: published,
	}
	if err := repo.CreateArticle(context.Background(), article); err != nil {
		t.Fatalf("failed to create article %s: %v", slug, err)
	}
	return article
}

func TestArticleRepository_CreateAndGet(t *testing.T) {
	db, teardown := setupRepoTest(t)
	defer teardown()
	repo := NewSQLArticleRepository(db)

	created := mustCreateArticle(t, repo, "first-post-1700000000000", "Banks", time.Now())
	if created.ID == 0 {
		t.Error("expected non-zero id after create")
	}

	found, err := repo.GetArticleBySlug(context.Background(), "first-post-1700000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("expected id %d, got %d", created.ID, found.ID)
	}
}

func TestArticleRepository_GetMissingIsNotFound(t *testing.T) {
	db, teardown := setupRepoTest(t)
	defer teardown()
	repo := NewSQLArticleRepository(db)

	_, err := repo.GetArticleBySlug(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error for missing article")
	}
}

func TestArticleRepository_ListOrdering(t *testing.T) {
	db, teardown := setupRepoTest(t)
	defer teardown()
	repo := NewSQLArticleRepository(db)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mustCreateArticle(t, repo, "old", "Tech", base)
	mustCreateArticle(t, repo, "new", "Tech", base.Add(48*time.Hour))
	mustCreateArticle(t, repo, "mid", "Tech", base.Add(24*time.Hour))

	articles, err := repo.ListArticles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}
	if articles[0].Slug != "new" || articles[1].Slug != "mid" || articles[2].Slug != "old" {
		t.Errorf("expected published-descending order, got %s, %s, %s",
			articles[0].Slug, articles[1].Slug, articles[2].Slug)
	}
}

func TestArticleRepository_DeleteCascadesComments(t *testing.T) {
	db, teardown := setupRepoTest(t)
	defer teardown()
	articles := NewSQLArticleRepository(db)
	comments := NewSQLCommentRepository(db)

	article := mustCreateArticle(t, articles, "doomed", "Energy", time.Now())
	err := comments.CreateComment(context.Background(), &Comment{
		ArticleID: article.ID,
		UserName:  "Visitor",
		UserEmail: "visitor@example.com",
		Content:   "great read",
	})
	if err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}

	if err := articles.DeleteArticle(context.Background(), article.ID); err != nil {
		t.Fatalf("failed to delete article: %v", err)
	}

	remaining, err := comments.ListCommentsByArticle(context.Background(), article.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected 0 comments after article delete, got %d", len(remaining))
	}
}

func TestCommentRepository_ListNewestFirst(t *testing.T) {
	db, teardown := setupRepoTest(t)
	defer teardown()
	articles := NewSQLArticleRepository(db)
	comments := NewSQLCommentRepository(db)

	article := mustCreateArticle(t, articles, "discussed", "Tech", time.Now())
	for _, body := range []string{"first", "second", "third"} {
		if err := comments.CreateComment(context.Background(), &Comment{
			ArticleID: article.ID,
			UserName:  "Visitor",
			UserEmail: "visitor@example.com",
			Content:   body,
		}); err != nil {
			t.Fatalf("failed to create comment %q: %v", body, err)
		}
	}

	list, err := comments.ListCommentsByArticle(context.Background(), article.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(list))
	}
	if list[0].Content != "third" {
		t.Errorf("expected newest comment first, got %q", list[0].Content)
	}
}

func TestCoverRepository_UpsertIsSingleRow(t *testing.T) {
	db, teardown := setupRepoTest(t)
	defer teardown()
	repo := NewSQLCoverRepository(db)

	first, err := repo.Upsert(context.Background(), "project", "newsletter", "/media/one.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := repo.Upsert(context.Background(), "project", "newsletter", "/media/two.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected upsert to reuse row %d, got new row %d", first.ID, second.ID)
	}

	found, err := repo.FindByCategoryAndName(context.Background(), "project", "newsletter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("expected to find cover, got nil")
	}
	if found.Image != "/media/two.jpg" {
		t.Errorf("expected updated image URL, got %q", found.Image)
	}

	// A missing slot is nil, not an error.
	missing, err := repo.FindByCategoryAndName(context.Background(), "project", "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing slot, got %v", missing)
	}
}
