package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"moodliftAPI/internal/content"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContentService struct {
	db *pgxpool.Pool
}

func NewContentService(db *pgxpool.Pool) *ContentService {
	return &ContentService{db: db}
}

func (s *ContentService) GetBooks(ctx context.Context, category string) ([]*content.Book, error) {
	query := `
	SELECT id, title, author, description, category, cover_url, link, is_active, created_at, updated_at
	FROM books
	WHERE is_active = true
	`
	args := []any{}
	if category != "" {
		query += ` AND category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY title ASC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch books: %w", err)
	}
	defer rows.Close()

	var books []*content.Book
	for rows.Next() {
		b := &content.Book{}
		err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Category, &b.CoverURL, &b.Link, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}

func (s *ContentService) CreateBook(ctx context.Context, req *content.CreateBookRequest) (*content.Book, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Author) == "" {
		return nil, fmt.Errorf("title and author are required")
	}

	query := `
	INSERT INTO books (title, author, description, category, cover_url, link, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, true, NOW(), NOW())
	RETURNING id, title, author, description, category, cover_url, link, is_active, created_at, updated_at
	`

	b := &content.Book{}
	err := s.db.QueryRow(ctx, query, req.Title, req.Author, req.Description, req.Category, req.CoverURL, req.Link).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.Category, &b.CoverURL, &b.Link, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return b, nil
}

func (s *ContentService) UpdateBook(ctx context.Context, bookID string, req *content.UpdateBookRequest) (*content.Book, error) {
	id, err := uuid.Parse(bookID)
	if err != nil {
		return nil, fmt.Errorf("invalid book ID: %w", err)
	}

	setClauses := []string{}
	args := []any{id}
	argPos := 2

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.Title != nil {
		addSet("title", *req.Title)
	}
	if req.Author != nil {
		addSet("author", *req.Author)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.Category != nil {
		addSet("category", *req.Category)
	}
	if req.CoverURL != nil {
		addSet("cover_url", *req.CoverURL)
	}
	if req.Link != nil {
		addSet("link", *req.Link)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
	UPDATE books SET %s, updated_at = NOW()
	WHERE id = $1
	RETURNING id, title, author, description, category, cover_url, link, is_active, created_at, updated_at
	`, strings.Join(setClauses, ", "))

	b := &content.Book{}
	err = s.db.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.Category, &b.CoverURL, &b.Link, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("book not found")
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return b, nil
}

func (s *ContentService) DeleteBook(ctx context.Context, bookID string) error {
	id, err := uuid.Parse(bookID)
	if err != nil {
		return fmt.Errorf("invalid book ID: %w", err)
	}

	result, err := s.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("book not found")
	}

	return nil
}

func (s *ContentService) GetConsultants(ctx context.Context) ([]*content.Consultant, error) {
	query := `
	SELECT id, name, specialty, bio, image_url, contact, is_active, created_at, updated_at
	FROM consultants
	WHERE is_active = true
	ORDER BY name ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch consultants: %w", err)
	}
	defer rows.Close()

	var consultants []*content.Consultant
	for rows.Next() {
		c := &content.Consultant{}
		err := rows.Scan(&c.ID, &c.Name, &c.Specialty, &c.Bio, &c.ImageURL, &c.Contact, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan consultant: %w", err)
		}
		consultants = append(consultants, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return consultants, nil
}

func (s *ContentService) CreateConsultant(ctx context.Context, req *content.CreateConsultantRequest) (*content.Consultant, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Specialty) == "" {
		return nil, fmt.Errorf("name and specialty are required")
	}

	query := `
	INSERT INTO consultants (name, specialty, bio, image_url, contact, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, true, NOW(), NOW())
	RETURNING id, name, specialty, bio, image_url, contact, is_active, created_at, updated_at
	`

	c := &content.Consultant{}
	err := s.db.QueryRow(ctx, query, req.Name, req.Specialty, req.Bio, req.ImageURL, req.Contact).Scan(
		&c.ID, &c.Name, &c.Specialty, &c.Bio, &c.ImageURL, &c.Contact, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create consultant: %w", err)
	}

	return c, nil
}

func (s *ContentService) UpdateConsultant(ctx context.Context, consultantID string, req *content.UpdateConsultantRequest) (*content.Consultant, error) {
	id, err := uuid.Parse(consultantID)
	if err != nil {
		return nil, fmt.Errorf("invalid consultant ID: %w", err)
	}

	setClauses := []string{}
	args := []any{id}
	argPos := 2

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.Specialty != nil {
		addSet("specialty", *req.Specialty)
	}
	if req.Bio != nil {
		addSet("bio", *req.Bio)
	}
	if req.ImageURL != nil {
		addSet("image_url", *req.ImageURL)
	}
	if req.Contact != nil {
		addSet("contact", *req.Contact)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
	UPDATE consultants SET %s, updated_at = NOW()
	WHERE id = $1
	RETURNING id, name, specialty, bio, image_url, contact, is_active, created_at, updated_at
	`, strings.Join(setClauses, ", "))

	c := &content.Consultant{}
	err = s.db.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Specialty, &c.Bio, &c.ImageURL, &c.Contact, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("consultant not found")
		}
		return nil, fmt.Errorf("failed to update consultant: %w", err)
	}

	return c, nil
}

func (s *ContentService) DeleteConsultant(ctx context.Context, consultantID string) error {
	id, err := uuid.Parse(consultantID)
	if err != nil {
		return fmt.Errorf("invalid consultant ID: %w", err)
	}

	result, err := s.db.Exec(ctx, `DELETE FROM consultants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete consultant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("consultant not found")
	}

	return nil
}

func (s *ContentService) GetFAQs(ctx context.Context) ([]*content.FAQ, error) {
	query := `
	SELECT id, question, answer, display_order, is_active, created_at, updated_at
	FROM faqs
	WHERE is_active = true
	ORDER BY display_order ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch FAQs: %w", err)
	}
	defer rows.Close()

	var faqs []*content.FAQ
	for rows.Next() {
		f := &content.FAQ{}
		err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.DisplayOrder, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan FAQ: %w", err)
		}
		faqs = append(faqs, f)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return faqs, nil
}

func (s *ContentService) CreateFAQ(ctx context.Context, req *content.CreateFAQRequest) (*content.FAQ, error) {
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		return nil, fmt.Errorf("question and answer are required")
	}

	query := `
	INSERT INTO faqs (question, answer, display_order, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, true, NOW(), NOW())
	RETURNING id, question, answer, display_order, is_active, created_at, updated_at
	`

	f := &content.FAQ{}
	err := s.db.QueryRow(ctx, query, req.Question, req.Answer, req.DisplayOrder).Scan(
		&f.ID, &f.Question, &f.Answer, &f.DisplayOrder, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create FAQ: %w", err)
	}

	return f, nil
}

func (s *ContentService) UpdateFAQ(ctx context.Context, faqID string, req *content.UpdateFAQRequest) (*content.FAQ, error) {
	id, err := uuid.Parse(faqID)
	if err != nil {
		return nil, fmt.Errorf("invalid FAQ ID: %w", err)
	}

	setClauses := []string{}
	args := []any{id}
	argPos := 2

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.Question != nil {
		addSet("question", *req.Question)
	}
	if req.Answer != nil {
		addSet("answer", *req.Answer)
	}
	if req.DisplayOrder != nil {
		addSet("display_order", *req.DisplayOrder)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
	UPDATE faqs SET %s, updated_at = NOW()
	WHERE id = $1
	RETURNING id, question, answer, display_order, is_active, created_at, updated_at
	`, strings.Join(setClauses, ", "))

	f := &content.FAQ{}
	err = s.db.QueryRow(ctx, query, args...).Scan(
		&f.ID, &f.Question, &f.Answer, &f.DisplayOrder, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("FAQ not found")
		}
		return nil, fmt.Errorf("failed to update FAQ: %w", err)
	}

	return f, nil
}

func (s *ContentService) DeleteFAQ(ctx context.Context, faqID string) error {
	id, err := uuid.Parse(faqID)
	if err != nil {
		return fmt.Errorf("invalid FAQ ID: %w", err)
	}

	result, err := s.db.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete FAQ: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("FAQ not found")
	}

	return nil
}

// SeedDefaultFAQs inserts the starter FAQ set when the table is empty.
func (s *ContentService) SeedDefaultFAQs(ctx context.Context) error {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM faqs`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count FAQs: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []content.CreateFAQRequest{
		{
			Question:     "What is MoodLift?",
			Answer:       "MoodLift helps you track your mood, practice guided breathing and grounding exercises, and build healthy daily habits.",
			DisplayOrder: 1,
		},
		{
			Question:     "How do streaks work?",
			Answer:       "Check in on consecutive days to grow your streak. Missing a day resets your current streak, but your longest streak is kept forever.",
			DisplayOrder: 2,
		},
		{
			Question:     "How do I earn points?",
			Answer:       "You earn points for daily logins, completing assessments, finishing games and engaging with content. Points unlock badges and milestones.",
			DisplayOrder: 3,
		},
		{
			Question:     "Is my data private?",
			Answer:       "Your mood entries and assessment results are visible only to you. We never share personal wellness data with third parties.",
			DisplayOrder: 4,
		},
	}

	for _, faq := range defaults {
		if _, err := s.CreateFAQ(ctx, &faq); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d default FAQs", len(defaults))
	return nil
}
