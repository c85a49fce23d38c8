package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhub/backend/internal/model"
	"github.com/taskhub/backend/internal/service"
)

type fakeTaskStore struct {
	tasks  map[int64]*model.Task
	nextID int64
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[int64]*model.Task{}, nextID: 1}
}

func (f *fakeTaskStore) CreateTask(ctx context.Context, userID int64, title string, description *string) (*model.Task, error) {
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
	tasks := []model.Task{}
	for _, task := range f.tasks {
		if task.UserID == userID {
			tasks = append(tasks, *task)
		}
	}
	return tasks, nil
}

func (f *fakeTaskStore) UpdateTask(ctx context.Context, taskID, userID int64, title, description *string, completed *bool) (*model.Task, error) {
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
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	delete(f.tasks, taskID)
	return task, nil
}

func taskRouter(t *testing.T, store service.TaskStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tasks := NewTaskHandler(service.NewTaskService(store))

	r := gin.New()
	api := r.Group("/api")
	api.Use(AuthMiddleware(testTokenService(t)))
	api.GET("/tasks", tasks.List)
	api.POST("/tasks", tasks.Create)
	api.PUT("/tasks/:id", tasks.Update)
	api.DELETE("/tasks/:id", tasks.Delete)
	return r
}

func bearerFor(t *testing.T, userID int64, email string) string {
	t.Helper()
	token, err := testTokenService(t).IssueAccessToken(model.TokenPayload{ID: userID, Email: email})
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, bearer string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestTasksRequireAuth(t *testing.T) {
	r := taskRouter(t, newFakeTaskStore())

	w := doJSON(t, r, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTaskCreateAndList(t *testing.T) {
	r := taskRouter(t, newFakeTaskStore())
	bearer := bearerFor(t, 1, "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/tasks", bearer, map[string]string{
		"title":       "buy milk",
		"description": "2 liters",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var task model.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, "buy milk", task.Title)
	assert.Equal(t, int64(1), task.UserID)
	require.NotNil(t, task.Description)
	assert.Equal(t, "2 liters", *task.Description)

	w = doJSON(t, r, http.MethodGet, "/api/tasks", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []model.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 1)

	// Another user sees an empty list.
	w = doJSON(t, r, http.MethodGet, "/api/tasks", bearerFor(t, 2, "b@x.com"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 0)
}

func TestTaskCreateRequiresTitle(t *testing.T) {
	r := taskRouter(t, newFakeTaskStore())

	w := doJSON(t, r, http.MethodPost, "/api/tasks", bearerFor(t, 1, "a@x.com"), map[string]string{
		"description": "no title",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskMutationByNonOwnerIs404(t *testing.T) {
	store := newFakeTaskStore()
	r := taskRouter(t, store)

	owner := bearerFor(t, 1, "a@x.com")
	stranger := bearerFor(t, 2, "b@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/tasks", owner, map[string]string{"title": "mine"})
	require.Equal(t, http.StatusCreated, w.Code)

	var task model.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))

	w = doJSON(t, r, http.MethodPut, "/api/tasks/1", stranger, map[string]any{"completed": true})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/tasks/1", stranger, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Identical to mutating a task that does not exist at all.
	w = doJSON(t, r, http.MethodPut, "/api/tasks/999", owner, map[string]any{"completed": true})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/tasks/1", owner, map[string]any{"completed": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.True(t, task.Completed)

	w = doJSON(t, r, http.MethodDelete, "/api/tasks/1", owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTaskInvalidID(t *testing.T) {
	r := taskRouter(t, newFakeTaskStore())

	w := doJSON(t, r, http.MethodPut, "/api/tasks/abc", bearerFor(t, 1, "a@x.com"), map[string]any{"completed": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
