// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chukainspires/coachsite/internal/models"
	"github.com/chukainspires/coachsite/internal/utils"
)

// SQLiteStore backs the record store with an embedded SQLite file. It exists
// so the site runs with zero external setup; the change feed is a polled
// change_log table kept by triggers, which keeps the at-least-once semantics
// of the Postgres backend.
type SQLiteStore struct {
	db       *sql.DB
	notifier *notifier
	done     chan struct{}
	lastSeen int64
}

// OpenSQLite opens (or creates) the database file and starts the change
// poller.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite only supports one writer; a single connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db:       db,
		notifier: newNotifier(),
		done:     make(chan struct{}),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Start polling past the current high-water mark so startup does not
	// replay old events.
	if err := db.QueryRow(`SELECT COALESCE(MAX(id), 0) FROM change_log`).Scan(&s.lastSeen); err != nil {
		db.Close()
		return nil, fmt.Errorf("read change log: %w", err)
	}
	go s.pollChanges()

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS site_content (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS images (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			url TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS form_submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS change_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tbl TEXT NOT NULL,
			op TEXT NOT NULL
		)`,
	}

	for _, table := range []string{TableSiteContent, TableImages, TableSubmissions} {
		for _, op := range []string{"INSERT", "UPDATE", "DELETE"} {
			statements = append(statements, fmt.Sprintf(
				`CREATE TRIGGER IF NOT EXISTS %[1]s_%[2]s_log AFTER %[2]s ON %[1]s
				 BEGIN INSERT INTO change_log (tbl, op) VALUES ('%[1]s', '%[2]s'); END`,
				table, op))
		}
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// pollChanges reads new change_log rows and republishes them as events.
// Polling trades latency for simplicity; writes are rare on this site.
func (s *SQLiteStore) pollChanges() {
	logger := utils.GetLogger()
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			rows, err := s.db.Query(
				`SELECT id, tbl, op FROM change_log WHERE id > ? ORDER BY id`, s.lastSeen)
			if err != nil {
				logger.Warn("change log poll failed", map[string]interface{}{"error": err})
				continue
			}
			for rows.Next() {
				var (
					id int64
					ev ChangeEvent
				)
				if err := rows.Scan(&id, &ev.Table, &ev.Op); err != nil {
					logger.Warn("change log scan failed", map[string]interface{}{"error": err})
					break
				}
				s.lastSeen = id
				s.notifier.publish(ev)
			}
			rows.Close()
		}
	}
}

// GetContent fetches the content blob stored under id.
func (s *SQLiteStore) GetContent(ctx context.Context, id string) (*models.PageContent, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM site_content WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content %q: %w", id, err)
	}

	var content models.PageContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("decode content %q: %w", id, err)
	}
	return &content, nil
}

// SaveContent upserts the whole blob under id.
func (s *SQLiteStore) SaveContent(ctx context.Context, id string, content *models.PageContent) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encode content %q: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO site_content (id, content) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET content = excluded.content`, id, raw)
	if err != nil {
		return fmt.Errorf("save content %q: %w", id, err)
	}
	return nil
}

// ListImages returns all image records, newest first.
func (s *SQLiteStore) ListImages(ctx context.Context) ([]models.ImageRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, url, category, description, created_at
		 FROM images ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var images []models.ImageRecord
	for rows.Next() {
		var img models.ImageRecord
		if err := rows.Scan(&img.ID, &img.Name, &img.URL, &img.Category, &img.Description, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// SaveImage upserts by name and fills in the assigned id and timestamp.
func (s *SQLiteStore) SaveImage(ctx context.Context, img *models.ImageRecord) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO images (name, url, category, description)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET
			url = excluded.url,
			category = excluded.category,
			description = excluded.description
		 RETURNING id, created_at`,
		img.Name, img.URL, img.Category, img.Description).Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		return fmt.Errorf("save image %q: %w", img.Name, err)
	}
	return nil
}

// DeleteImage removes an image record by id.
func (s *SQLiteStore) DeleteImage(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete image %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddSubmission inserts a contact message.
func (s *SQLiteStore) AddSubmission(ctx context.Context, sub *models.FormSubmission) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO form_submissions (name, email, message)
		 VALUES (?, ?, ?) RETURNING id, created_at`,
		sub.Name, sub.Email, sub.Message).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("add submission: %w", err)
	}
	return nil
}

// ListSubmissions returns all contact messages, newest first.
func (s *SQLiteStore) ListSubmissions(ctx context.Context) ([]models.FormSubmission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, message, created_at
		 FROM form_submissions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []models.FormSubmission
	for rows.Next() {
		var sub models.FormSubmission
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Message, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// DeleteSubmission removes a contact message by id.
func (s *SQLiteStore) DeleteSubmission(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM form_submissions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete submission %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Subscribe returns a change-event channel for table.
func (s *SQLiteStore) Subscribe(table string) <-chan ChangeEvent {
	return s.notifier.subscribe(table)
}

// Close stops the poller and closes the database.
func (s *SQLiteStore) Close() error {
	close(s.done)
	s.notifier.closeAll()
	return s.db.Close()
}
