// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/chukainspires/coachsite/internal/models"
	"github.com/chukainspires/coachsite/internal/utils"
)

// notifyChannel is the pg_notify channel all table triggers write to.
const notifyChannel = "coachsite_changes"

// PostgresStore backs the record store with Postgres. Change events come
// from LISTEN/NOTIFY via row triggers, so edits made by other sessions (or
// directly in the database) reach the aggregation layer too.
type PostgresStore struct {
	db       *sql.DB
	listener *pq.Listener
	notifier *notifier
	done     chan struct{}
}

// OpenPostgres connects, creates the schema when missing and starts the
// change listener.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{
		db:       db,
		notifier: newNotifier(),
		done:     make(chan struct{}),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.listener = pq.NewListener(dsn, 10*time.Second, time.Minute, nil)
	if err := s.listener.Listen(notifyChannel); err != nil {
		s.listener.Close()
		db.Close()
		return nil, fmt.Errorf("listen %s: %w", notifyChannel, err)
	}
	go s.forwardNotifications()

	return s, nil
}

func (s *PostgresStore) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS site_content (
			id TEXT PRIMARY KEY,
			content JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS images (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			url TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS form_submissions (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE OR REPLACE FUNCTION coachsite_notify_change() RETURNS trigger AS $$
		BEGIN
			PERFORM pg_notify('` + notifyChannel + `', TG_TABLE_NAME || ':' || TG_OP);
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql`,
	}

	for _, table := range []string{TableSiteContent, TableImages, TableSubmissions} {
		statements = append(statements,
			fmt.Sprintf(`DROP TRIGGER IF EXISTS %s_change ON %s`, table, table),
			fmt.Sprintf(`CREATE TRIGGER %s_change
				AFTER INSERT OR UPDATE OR DELETE ON %s
				FOR EACH STATEMENT EXECUTE FUNCTION coachsite_notify_change()`, table, table),
		)
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// forwardNotifications turns pg_notify payloads ("table:OP") into change
// events for local subscribers.
func (s *PostgresStore) forwardNotifications() {
	logger := utils.GetLogger()
	for {
		select {
		case <-s.done:
			return
		case n := <-s.listener.Notify:
			if n == nil {
				// Connection loss; pq re-establishes the listener itself.
				continue
			}
			parts := strings.SplitN(n.Extra, ":", 2)
			if len(parts) != 2 {
				logger.Warn("malformed change notification", map[string]interface{}{"payload": n.Extra})
				continue
			}
			s.notifier.publish(ChangeEvent{Table: parts[0], Op: parts[1]})
		case <-time.After(90 * time.Second):
			// Periodic liveness check on a quiet channel
			go s.listener.Ping()
		}
	}
}

// GetContent fetches the content blob stored under id.
func (s *PostgresStore) GetContent(ctx context.Context, id string) (*models.PageContent, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM site_content WHERE id = $1`, id).Scan(&raw)
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

// SaveContent upserts the whole blob under id. The write is a single
// statement, so a save is all-or-nothing.
func (s *PostgresStore) SaveContent(ctx context.Context, id string, content *models.PageContent) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encode content %q: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO site_content (id, content) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content`, id, raw)
	if err != nil {
		return fmt.Errorf("save content %q: %w", id, err)
	}
	return nil
}

// ListImages returns all image records, newest first.
func (s *PostgresStore) ListImages(ctx context.Context) ([]models.ImageRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, url, category, description, created_at
		 FROM images ORDER BY created_at DESC`)
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
func (s *PostgresStore) SaveImage(ctx context.Context, img *models.ImageRecord) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO images (name, url, category, description)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO UPDATE SET
			url = EXCLUDED.url,
			category = EXCLUDED.category,
			description = EXCLUDED.description
		 RETURNING id, created_at`,
		img.Name, img.URL, img.Category, img.Description).Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		return fmt.Errorf("save image %q: %w", img.Name, err)
	}
	return nil
}

// DeleteImage removes an image record by id.
func (s *PostgresStore) DeleteImage(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete image %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddSubmission inserts a contact message; the store assigns id and
// created_at.
func (s *PostgresStore) AddSubmission(ctx context.Context, sub *models.FormSubmission) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO form_submissions (name, email, message)
		 VALUES ($1, $2, $3) RETURNING id, created_at`,
		sub.Name, sub.Email, sub.Message).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("add submission: %w", err)
	}
	return nil
}

// ListSubmissions returns all contact messages, newest first.
func (s *PostgresStore) ListSubmissions(ctx context.Context) ([]models.FormSubmission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, message, created_at
		 FROM form_submissions ORDER BY created_at DESC`)
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
func (s *PostgresStore) DeleteSubmission(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM form_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete submission %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Subscribe returns a change-event channel for table.
func (s *PostgresStore) Subscribe(table string) <-chan ChangeEvent {
	return s.notifier.subscribe(table)
}

// Close stops the listener and closes the connection pool.
func (s *PostgresStore) Close() error {
	close(s.done)
	s.listener.Close()
	s.notifier.closeAll()
	return s.db.Close()
}
