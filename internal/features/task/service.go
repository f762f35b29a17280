package task

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskService defines the interface for task tracking
type TaskService interface {
	AddTask(ctx context.Context, t *Task) error
	ListTasks(ctx context.Context) ([]Task, error)
	ToggleTaskComplete(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
}

// TaskServiceImpl implements TaskService
type TaskServiceImpl struct {
	TaskRepo TaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo TaskRepository) TaskService {
	return &TaskServiceImpl{
		TaskRepo: taskRepo,
	}
}

// AddTask appends a task to the store
func (s *TaskServiceImpl) AddTask(ctx context.Context, t *Task) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	return s.TaskRepo.Insert(ctx, t)
}

// ListTasks returns all tasks, newest first
func (s *TaskServiceImpl) ListTasks(ctx context.Context) ([]Task, error) {
	return s.TaskRepo.FindAll(ctx)
}

// ToggleTaskComplete flips a task between Pending and Completed
func (s *TaskServiceImpl) ToggleTaskComplete(ctx context.Context, id string) error {
	t, err := s.TaskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if t.Status == StatusPending {
		t.Status = StatusCompleted
	} else {
		t.Status = StatusPending
	}
	return s.TaskRepo.Update(ctx, t)
}

// DeleteTask removes a task from the store
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	return s.TaskRepo.Delete(ctx, id)
}
