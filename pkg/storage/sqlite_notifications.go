package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pacerhq/pacer/pkg/domain/notification"
)

const NotificationsDB = "notifications.db"

// SQLiteNotificationRepository stores notifications in .pacer/notifications.db.
// Notifications outlive single commands and may pile up unread, so they get a
// real store instead of a rewritten JSON file.
type SQLiteNotificationRepository struct {
	db *sql.DB
}

var _ notification.Repository = (*SQLiteNotificationRepository)(nil)

// OpenNotificationRepository opens (and migrates) the notification database
// inside the workspace directory.
func OpenNotificationRepository(root string) (*SQLiteNotificationRepository, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=foreign_keys(1)",
		filepath.Join(root, PacerDir, NotificationsDB))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open notifications db: %w", err)
	}

	repo := &SQLiteNotificationRepository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteNotificationRepository) migrate() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		goal_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		metadata TEXT,
		created_at TEXT NOT NULL,
		read_at TEXT
	)`)
	if err != nil {
		return fmt.Errorf("migrate notifications db: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (r *SQLiteNotificationRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteNotificationRepository) Create(ctx context.Context, n notification.Notification) error {
	var metadata []byte
	if len(n.Metadata) > 0 {
		var err error
		metadata, err = json.Marshal(n.Metadata)
		if err != nil {
			return fmt.Errorf("marshal notification metadata: %w", err)
		}
	}

	var readAt interface{}
	if n.ReadAt != nil {
		readAt = n.ReadAt.Format(time.RFC3339Nano)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications(id,goal_id,kind,title,body,metadata,created_at,read_at) VALUES (?,?,?,?,?,?,?,?)`,
		n.ID, n.GoalID, string(n.Kind), n.Title, n.Body, nullableBytes(metadata),
		n.CreatedAt.Format(time.RFC3339Nano), readAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *SQLiteNotificationRepository) FindForGoal(ctx context.Context, goalID string) ([]notification.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id,goal_id,kind,title,body,metadata,created_at,read_at FROM notifications WHERE goal_id=? ORDER BY created_at DESC`,
		goalID)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var result []notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (r *SQLiteNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read_at=? WHERE id=? AND read_at IS NULL`,
		time.Now().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("notification %s not found or already read", id)
	}
	return nil
}

func scanNotification(rows *sql.Rows) (notification.Notification, error) {
	var n notification.Notification
	var kind string
	var metadata sql.NullString
	var createdAt string
	var readAt sql.NullString

	if err := rows.Scan(&n.ID, &n.GoalID, &kind, &n.Title, &n.Body, &metadata, &createdAt, &readAt); err != nil {
		return n, fmt.Errorf("scan notification: %w", err)
	}
	n.Kind = notification.Kind(kind)

	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &n.Metadata); err != nil {
			return n, fmt.Errorf("unmarshal notification metadata: %w", err)
		}
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return n, fmt.Errorf("parse notification timestamp: %w", err)
	}
	n.CreatedAt = ts

	if readAt.Valid {
		read, err := time.Parse(time.RFC3339Nano, readAt.String)
		if err != nil {
			return n, fmt.Errorf("parse read timestamp: %w", err)
		}
		n.ReadAt = &read
	}

	return n, nil
}

func nullableBytes(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
