package db

import (
	"context"

	"github.com/taskhub/backend/internal/model"
)

func (db *Postgres) EnsureTaskSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS tasks (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS tasks_user_id_idx ON tasks(user_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) CreateTask(ctx context.Context, userID int64, title string, description *string) (*model.Task, error) {
	query := `
		INSERT INTO tasks (title, description, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, title, description, completed, user_id, created_at, updated_at
	`
	var task model.Task
	err := db.Pool.QueryRow(ctx, query, title, description, userID).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (db *Postgres) ListTasksByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	query := `
		SELECT id, title, description, completed, user_id, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var task model.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&task.UserID,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// UpdateTask applies a partial update scoped to the owning user. A task that
// exists under another user_id yields pgx.ErrNoRows, same as a missing id.
func (db *Postgres) UpdateTask(ctx context.Context, taskID, userID int64, title, description *string, completed *bool) (*model.Task, error) {
	query := `
		UPDATE tasks
		SET title = COALESCE($3, title),
		    description = COALESCE($4, description),
		    completed = COALESCE($5, completed),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, description, completed, user_id, created_at, updated_at
	`
	var task model.Task
	err := db.Pool.QueryRow(ctx, query, taskID, userID, title, description, completed).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (db *Postgres) DeleteTask(ctx context.Context, taskID, userID int64) (*model.Task, error) {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, description, completed, user_id, created_at, updated_at
	`
	var task model.Task
	err := db.Pool.QueryRow(ctx, query, taskID, userID).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
