package core

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-client-go/internal/models"
)

const tasksPageOne = `{
	"tasks": [
		{"id":"t1","title":"Follow up with Acme","status":"pending"},
		{"id":"t2","title":"Prepare portfolio","status":"in-progress"}
	],
	"currentPage": 1,
	"numOfPages": 1,
	"totalTasks": 2
}`

func TestDataStore_LoadTasks_ReplacesListAndPagination(t *testing.T) {
	store, _ := newTestData(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tasks", r.URL.Path)
		w.Write([]byte(tasksPageOne))
	})

	require.NoError(t, store.LoadTasks(context.Background(), nil, 0, 0))

	tasks := store.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, models.TaskStatusPending, tasks[0].Status)
	assert.Equal(t, 2, store.TasksPagination().TotalItems)
}

func TestDataStore_CreateTask_FailureLeavesListUnchanged(t *testing.T) {
	store, _ := newTestData(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"title already taken"}`))
			return
		}
		w.Write([]byte(tasksPageOne))
	})

	require.NoError(t, store.LoadTasks(context.Background(), nil, 0, 0))

	task, err := store.CreateTask(context.Background(), models.CreateTaskRequest{Title: "Follow up with Acme"})
	require.Error(t, err)
	assert.Nil(t, task)

	// Failed writes never mutate the list.
	assert.Len(t, store.Tasks(), 2)
	assert.Equal(t, "title already taken", store.ErrFor(ResourceTasks))
}

func TestDataStore_CreateTask_PrependsToLoadedList(t *testing.T) {
	store, _ := newTestData(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"task":{"id":"t3","title":"Send thank-you note","status":"pending"}}`))
			return
		}
		w.Write([]byte(tasksPageOne))
	})

	require.NoError(t, store.LoadTasks(context.Background(), nil, 0, 0))

	task, err := store.CreateTask(context.Background(), models.CreateTaskRequest{Title: "Send thank-you note"})
	require.NoError(t, err)
	require.NotNil(t, task)

	tasks := store.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "t3", tasks[0].ID)
}

func TestDataStore_CompleteTask_PatchesStatus(t *testing.T) {
	var patched map[string]any
	store, _ := newTestData(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			require.Equal(t, "/tasks/t1", r.URL.Path)
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, &patched))
			w.Write([]byte(`{"task":{"id":"t1","title":"Follow up with Acme","status":"completed"}}`))
			return
		}
		w.Write([]byte(tasksPageOne))
	})

	require.NoError(t, store.LoadTasks(context.Background(), nil, 0, 0))

	task, err := store.CompleteTask(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, task.Status)

	// Only the status travels on the wire.
	assert.Equal(t, map[string]any{"status": "completed"}, patched)

	tasks := store.Tasks()
	assert.Equal(t, models.TaskStatusCompleted, tasks[0].Status)
}

func TestDataStore_DeleteTask_RemovesFromList(t *testing.T) {
	store, _ := newTestData(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.Write([]byte(`{"message":"task removed"}`))
			return
		}
		w.Write([]byte(tasksPageOne))
	})

	require.NoError(t, store.LoadTasks(context.Background(), nil, 0, 0))
	require.True(t, store.DeleteTask(context.Background(), "t2"))

	tasks := store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].ID)
}
