package sqlite

import (
	"database/sql"
	"time"

	"github.com/missionhq/missionhq/internal/domain"
)

// ─── Notification Log ───────────────────────────────────────────────────────

// InsertNotification appends a notification to the log.
func (d *DB) InsertNotification(n domain.Notification) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO notifications (message, severity, created_at, shown)
		 VALUES (?, ?, ?, ?)`,
		n.Message, string(n.Severity), n.CreatedAt.Unix(), n.Shown,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// NotificationCountSince returns how many notifications were created at or
// after the given instant.
func (d *DB) NotificationCountSince(since time.Time) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE created_at >= ?`, since.Unix(),
	).Scan(&count)
	return count, err
}

// ListPendingNotifications returns unshown notifications, oldest first.
func (d *DB) ListPendingNotifications(limit int) ([]domain.Notification, error) {
	rows, err := d.db.Query(
		`SELECT id, message, severity, created_at, shown
		 FROM notifications WHERE shown = 0 ORDER BY created_at ASC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifs = append(notifs, *n)
	}
	return notifs, rows.Err()
}

// ListNotifications returns the most recent notifications regardless of shown
// state, newest first.
func (d *DB) ListNotifications(limit int) ([]domain.Notification, error) {
	rows, err := d.db.Query(
		`SELECT id, message, severity, created_at, shown
		 FROM notifications ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifs = append(notifs, *n)
	}
	return notifs, rows.Err()
}

// MarkNotificationShown marks a notification as surfaced.
func (d *DB) MarkNotificationShown(id int64) error {
	result, err := d.db.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func scanNotification(s scanner) (*domain.Notification, error) {
	var n domain.Notification
	var severity string
	var createdAt int64

	err := s.Scan(&n.ID, &n.Message, &severity, &createdAt, &n.Shown)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	n.Severity = domain.Severity(severity)
	n.CreatedAt = time.Unix(createdAt, 0)
	return &n, nil
}
