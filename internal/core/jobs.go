package core

import (
	"context"
	"net/url"

	"jobtrack-client-go/internal/models"
)

// LoadJobs fetches one page of job applications and replaces the in-memory
// list and pagination state wholesale. On failure the previous list stays
// intact and the error is recorded for the jobs resource.
func (s *DataStore) LoadJobs(ctx context.Context, filters map[string]string, page, limit int) error {
	if s.gated() {
		return nil
	}
	s.begin(ResourceJobs)

	env, err := s.api.Get(ctx, "/jobs"+listQuery(filters, page, limit))
	if err != nil {
		s.finish(ResourceJobs, err)
		return err
	}

	var jobs []models.Job
	if err := env.Decode("jobs", &jobs); err != nil {
		s.finish(ResourceJobs, err)
		return err
	}

	s.mu.Lock()
	s.jobs = jobs
	s.jobsPage = models.Pagination{
		CurrentPage: env.Int("currentPage"),
		TotalPages:  env.Int("numOfPages"),
		TotalItems:  env.Int("totalJobs"),
	}
	s.mu.Unlock()

	s.finish(ResourceJobs, nil)
	return nil
}

// GetJobByID fetches a single job, independent of the list cache. Returns
// nil on any failure; the message is recorded for the jobs resource.
func (s *DataStore) GetJobByID(ctx context.Context, id string) *models.Job {
	if s.gated() {
		return nil
	}
	s.begin(ResourceJobs)

	env, err := s.api.Get(ctx, "/jobs/"+url.PathEscape(id))
	if err != nil {
		s.finish(ResourceJobs, err)
		return nil
	}

	var job models.Job
	if err := env.Decode("job", &job); err != nil {
		s.finish(ResourceJobs, err)
		return nil
	}

	s.finish(ResourceJobs, nil)
	return &job
}

// CreateJob creates a job application. On success the server's copy is
// prepended to the in-memory list when one is loaded; a never-loaded list
// stays empty until the next explicit load.
func (s *DataStore) CreateJob(ctx context.Context, req models.CreateJobRequest) (*models.Job, error) {
	if s.gated() {
		return nil, nil
	}
	if err := s.validate.Struct(req); err != nil {
		s.finish(ResourceJobs, err)
		return nil, err
	}
	s.begin(ResourceJobs)

	env, err := s.api.Post(ctx, "/jobs", req)
	if err != nil {
		s.finish(ResourceJobs, err)
		return nil, err
	}

	var job models.Job
	if err := env.Decode("job", &job); err != nil {
		s.finish(ResourceJobs, err)
		return nil, err
	}

	s.mu.Lock()
	if len(s.jobs) > 0 {
		s.jobs = append([]models.Job{job}, s.jobs...)
	}
	s.mu.Unlock()

	s.finish(ResourceJobs, nil)
	return &job, nil
}

// UpdateJob patches a job and swaps the server's copy into the in-memory
// list by id when loaded.
func (s *DataStore) UpdateJob(ctx context.Context, id string, req models.UpdateJobRequest) (*models.Job, error) {
	if s.gated() {
		return nil, nil
	}
	if err := s.validate.Struct(req); err != nil {
		s.finish(ResourceJobs, err)
		return nil, err
	}
	s.begin(ResourceJobs)

	env, err := s.api.Patch(ctx, "/jobs/"+url.PathEscape(id), req)
	if err != nil {
		s.finish(ResourceJobs, err)
		return nil, err
	}

	var job models.Job
	if err := env.Decode("job", &job); err != nil {
		s.finish(ResourceJobs, err)
		return nil, err
	}

	s.replaceJob(job)
	s.finish(ResourceJobs, nil)
	return &job, nil
}

// DeleteJob deletes a job server-side and drops it from the in-memory list.
// Returns false on failure; delete failures are recorded, never returned.
func (s *DataStore) DeleteJob(ctx context.Context, id string) bool {
	if s.gated() {
		return false
	}
	s.begin(ResourceJobs)

	if _, err := s.api.Delete(ctx, "/jobs/"+url.PathEscape(id)); err != nil {
		s.finish(ResourceJobs, err)
		return false
	}

	s.mu.Lock()
	for i, j := range s.jobs {
		if j.ID == id {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.finish(ResourceJobs, nil)
	return true
}

// AddInterview appends an interview to a job's history server-side. The
// server returns the whole job with the updated interview array, which
// replaces the local copy.
func (s *DataStore) AddInterview(ctx context.Context, jobID string, req models.InterviewRequest) (*models.Job, error) {
	if s.gated() {
		return nil, nil
	}
	if err := s.validate.Struct(req); err != nil {
		s.finish(ResourceJobs, err)
		return nil, err
	}
	s.begin(ResourceJobs)

	env, err := s.api.Post(ctx, "/jobs/"+url.PathEscape(jobID)+"/interviews", req)
	if err != nil {
		s.finish(ResourceJobs, err)
		return nil, err
	}

	var job models.Job
	if err := env.Decode("job", &job); err != nil {
		s.finish(ResourceJobs, err)
		return nil, err
	}

	s.replaceJob(job)
	s.finish(ResourceJobs, nil)
	return &job, nil
}

// replaceJob swaps the matching element of the in-memory list by id. A job
// absent from the list (or a never-loaded list) is left alone.
func (s *DataStore) replaceJob(job models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, j := range s.jobs {
		if j.ID == job.ID {
			s.jobs[i] = job
			return
		}
	}
}

// Jobs returns a copy of the in-memory job list.
func (s *DataStore) Jobs() []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// JobsPagination returns the paging state of the last successful job load.
func (s *DataStore) JobsPagination() models.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobsPage
}
