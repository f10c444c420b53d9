package core

import (
	"context"
	"net/url"

	"jobtrack-client-go/internal/models"
)

// LoadTasks fetches one page of tasks and replaces the in-memory list and
// pagination state wholesale.
func (s *DataStore) LoadTasks(ctx context.Context, filters map[string]string, page, limit int) error {
	if s.gated() {
		return nil
	}
	s.begin(ResourceTasks)

	env, err := s.api.Get(ctx, "/tasks"+listQuery(filters, page, limit))
	if err != nil {
		s.finish(ResourceTasks, err)
		return err
	}

	var tasks []models.Task
	if err := env.Decode("tasks", &tasks); err != nil {
		s.finish(ResourceTasks, err)
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.tasksPage = models.Pagination{
		CurrentPage: env.Int("currentPage"),
		TotalPages:  env.Int("numOfPages"),
		TotalItems:  env.Int("totalTasks"),
	}
	s.mu.Unlock()

	s.finish(ResourceTasks, nil)
	return nil
}

// GetTaskByID fetches a single task. Returns nil on any failure.
func (s *DataStore) GetTaskByID(ctx context.Context, id string) *models.Task {
	if s.gated() {
		return nil
	}
	s.begin(ResourceTasks)

	env, err := s.api.Get(ctx, "/tasks/"+url.PathEscape(id))
	if err != nil {
		s.finish(ResourceTasks, err)
		return nil
	}

	var task models.Task
	if err := env.Decode("task", &task); err != nil {
		s.finish(ResourceTasks, err)
		return nil
	}

	s.finish(ResourceTasks, nil)
	return &task
}

// CreateTask creates a task and prepends the server's copy to the loaded
// list.
func (s *DataStore) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	if s.gated() {
		return nil, nil
	}
	if err := s.validate.Struct(req); err != nil {
		s.finish(ResourceTasks, err)
		return nil, err
	}
	s.begin(ResourceTasks)

	env, err := s.api.Post(ctx, "/tasks", req)
	if err != nil {
		s.finish(ResourceTasks, err)
		return nil, err
	}

	var task models.Task
	if err := env.Decode("task", &task); err != nil {
		s.finish(ResourceTasks, err)
		return nil, err
	}

	s.mu.Lock()
	if len(s.tasks) > 0 {
		s.tasks = append([]models.Task{task}, s.tasks...)
	}
	s.mu.Unlock()

	s.finish(ResourceTasks, nil)
	return &task, nil
}

// UpdateTask patches a task and swaps the server's copy into the loaded
// list.
func (s *DataStore) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	if s.gated() {
		return nil, nil
	}
	if err := s.validate.Struct(req); err != nil {
		s.finish(ResourceTasks, err)
		return nil, err
	}
	return s.patchTask(ctx, id, req)
}

// CompleteTask marks a task completed. Sugar over the same patch endpoint.
func (s *DataStore) CompleteTask(ctx context.Context, id string) (*models.Task, error) {
	if s.gated() {
		return nil, nil
	}
	completed := models.TaskStatusCompleted
	return s.patchTask(ctx, id, models.UpdateTaskRequest{Status: &completed})
}

func (s *DataStore) patchTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	s.begin(ResourceTasks)

	env, err := s.api.Patch(ctx, "/tasks/"+url.PathEscape(id), req)
	if err != nil {
		s.finish(ResourceTasks, err)
		return nil, err
	}

	var task models.Task
	if err := env.Decode("task", &task); err != nil {
		s.finish(ResourceTasks, err)
		return nil, err
	}

	s.mu.Lock()
	for i, t := range s.tasks {
		if t.ID == task.ID {
			s.tasks[i] = task
			break
		}
	}
	s.mu.Unlock()

	s.finish(ResourceTasks, nil)
	return &task, nil
}

// DeleteTask deletes a task. Returns false on failure.
func (s *DataStore) DeleteTask(ctx context.Context, id string) bool {
	if s.gated() {
		return false
	}
	s.begin(ResourceTasks)

	if _, err := s.api.Delete(ctx, "/tasks/"+url.PathEscape(id)); err != nil {
		s.finish(ResourceTasks, err)
		return false
	}

	s.mu.Lock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.finish(ResourceTasks, nil)
	return true
}

// Tasks returns a copy of the in-memory task list.
func (s *DataStore) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// TasksPagination returns the paging state of the last successful task load.
func (s *DataStore) TasksPagination() models.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasksPage
}
