package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/backend/internal/model"
)

type fakeTaskStore struct {
	tasks  map[int64]*model.Task
	nextID int64
	err    error
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[int64]*model.Task{}, nextID: 1}
}

func (f *fakeTaskStore) CreateTask(ctx context.Context, userID int64, title string, description *string) (*model.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	task := &model.Task{
		ID:          f.nextID,
		Title:       title,
		Description: description,
		UserID:      userID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.nextID++
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeTaskStore) ListTasksByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	tasks := []model.Task{}
	for _, task := range f.tasks {
		if task.UserID == userID {
			tasks = append(tasks, *task)
		}
	}
	return tasks, nil
}

func (f *fakeTaskStore) UpdateTask(ctx context.Context, taskID, userID int64, title, description *string, completed *bool) (*model.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	if title != nil {
		task.Title = *title
	}
	if description != nil {
		task.Description = description
	}
	if completed != nil {
		task.Completed = *completed
	}
	return task, nil
}

func (f *fakeTaskStore) DeleteTask(ctx context.Context, taskID, userID int64) (*model.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	delete(f.tasks, taskID)
	return task, nil
}

func TestTaskCreateRequiresTitle(t *testing.T) {
	svc := NewTaskService(newFakeTaskStore())

	_, err := svc.Create(context.Background(), 1, model.CreateTaskRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	task, err := svc.Create(context.Background(), 1, model.CreateTaskRequest{Title: " buy milk "})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Title)
	assert.False(t, task.Completed)
}

func TestTaskListIsScopedToUser(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewTaskService(store)

	_, err := svc.Create(context.Background(), 1, model.CreateTaskRequest{Title: "mine"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 2, model.CreateTaskRequest{Title: "theirs"})
	require.NoError(t, err)

	tasks, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Title)
}

func TestTaskMutationByNonOwnerBehavesAsNotFound(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewTaskService(store)

	task, err := svc.Create(context.Background(), 1, model.CreateTaskRequest{Title: "mine"})
	require.NoError(t, err)

	done := true
	_, ownerMissing := svc.Update(context.Background(), 999, 1, model.UpdateTaskRequest{Completed: &done})
	_, wrongOwner := svc.Update(context.Background(), task.ID, 2, model.UpdateTaskRequest{Completed: &done})

	assert.ErrorIs(t, ownerMissing, ErrNotFound)
	assert.ErrorIs(t, wrongOwner, ErrNotFound)
	assert.Equal(t, ownerMissing, wrongOwner)

	_, err = svc.Delete(context.Background(), task.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	// The owner still can.
	updated, err := svc.Update(context.Background(), task.ID, 1, model.UpdateTaskRequest{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	deleted, err := svc.Delete(context.Background(), task.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, task.ID, deleted.ID)
}

func TestTaskUpdateRejectsEmptyTitle(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewTaskService(store)

	task, err := svc.Create(context.Background(), 1, model.CreateTaskRequest{Title: "mine"})
	require.NoError(t, err)

	empty := " "
	_, err = svc.Update(context.Background(), task.ID, 1, model.UpdateTaskRequest{Title: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
