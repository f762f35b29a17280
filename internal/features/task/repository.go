package task

import (
	"context"
	"errors"
	"sync"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository defines access to the task collection
type TaskRepository interface {
	Insert(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	FindAll(ctx context.Context) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
}

// InMemoryTaskRepository keeps tasks newest-first behind a single mutex
type InMemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks []Task
}

func NewTaskRepository() TaskRepository {
	return &InMemoryTaskRepository{}
}

func (r *InMemoryTaskRepository) Insert(ctx context.Context, t *Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = append([]Task{*t}, r.tasks...)
	return nil
}

func (r *InMemoryTaskRepository) FindByID(ctx context.Context, id string) (*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.tasks {
		if r.tasks[i].ID.Hex() == id {
			t := r.tasks[i]
			return &t, nil
		}
	}
	return nil, ErrTaskNotFound
}

func (r *InMemoryTaskRepository) FindAll(ctx context.Context) ([]Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out, nil
}

func (r *InMemoryTaskRepository) Update(ctx context.Context, t *Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID == t.ID {
			r.tasks[i] = *t
			return nil
		}
	}
	return ErrTaskNotFound
}

func (r *InMemoryTaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID.Hex() == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}
