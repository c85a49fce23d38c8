package service

import (
	"context"
	"strings"

	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/model"
)

type TaskStore interface {
	CreateTask(ctx context.Context, userID int64, title string, description *string) (*model.Task, error)
	ListTasksByUser(ctx context.Context, userID int64) ([]model.Task, error)
	UpdateTask(ctx context.Context, taskID, userID int64, title, description *string, completed *bool) (*model.Task, error)
	DeleteTask(ctx context.Context, taskID, userID int64) (*model.Task, error)
}

// TaskService scopes every operation to the authenticated user. A task owned
// by someone else is indistinguishable from a task that does not exist.
type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) List(ctx context.Context, userID int64) ([]model.Task, error) {
	tasks, err := s.store.ListTasksByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, userID int64, req model.CreateTaskRequest) (*model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	task, err := s.store.CreateTask(ctx, userID, title, req.Description)
	if err != nil {
		return nil, storeError(err)
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, taskID, userID int64, req model.UpdateTaskRequest) (*model.Task, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, ErrInvalidInput
	}

	task, err := s.store.UpdateTask(ctx, taskID, userID, req.Title, req.Description, req.Completed)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, taskID, userID int64) (*model.Task, error) {
	task, err := s.store.DeleteTask(ctx, taskID, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return task, nil
}
