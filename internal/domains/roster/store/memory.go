package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"weekgrid/infras/otel"
	"weekgrid/internal/domains/roster/model"
	"weekgrid/shared/constant"
	"weekgrid/shared/failure"
	"weekgrid/shared/timezone"

	"github.com/google/uuid"
)

// Memory keeps the roster in a process-scoped map.
type Memory struct {
	mu     sync.Mutex
	people map[string]model.Person
	otel   otel.Otel
}

func NewMemory(ot otel.Otel) *Memory {
	return &Memory{
		people: make(map[string]model.Person),
		otel:   ot,
	}
}

func (m *Memory) List(ctx context.Context) ([]model.Person, error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".roster.List")
	defer scope.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	people := make([]model.Person, 0, len(m.people))
	for _, p := range m.people {
		people = append(people, p)
	}

	sort.Slice(people, func(i, j int) bool { return people[i].Name < people[j].Name })

	return people, nil
}

func (m *Memory) Add(ctx context.Context, person model.Person) (model.Person, error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".roster.Add")
	defer scope.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.addLocked(person)
}

func (m *Memory) addLocked(person model.Person) (model.Person, error) {
	for _, existing := range m.people {
		if existing.Name == person.Name {
			return model.Person{}, duplicateName(person.Name)
		}
	}

	if person.ID == "" {
		person.ID = uuid.NewString()
	}

	if person.CreatedAt.IsZero() {
		person.CreatedAt = timezone.Now()
	}

	m.people[person.ID] = person

	return person, nil
}

func (m *Memory) Remove(ctx context.Context, id string) error {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".roster.Remove")
	defer scope.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.people, id)

	return nil
}

// File adds a durable JSON snapshot on top of the memory roster, a flat
// mapping from person id to record under a versioned file name.
type File struct {
	mem  *Memory
	path string
}

func NewFile(path string, ot otel.Otel) (*File, error) {
	st := &File{
		mem:  NewMemory(ot),
		path: path,
	}

	if err := st.load(); err != nil {
		return nil, err
	}

	return st, nil
}

func (f *File) List(ctx context.Context) ([]model.Person, error) {
	return f.mem.List(ctx)
}

func (f *File) Add(ctx context.Context, person model.Person) (model.Person, error) {
	f.mem.mu.Lock()
	defer f.mem.mu.Unlock()

	added, err := f.mem.addLocked(person)
	if err != nil {
		return model.Person{}, err
	}

	if err := f.saveLocked(); err != nil {
		delete(f.mem.people, added.ID)

		return model.Person{}, err
	}

	return added, nil
}

func (f *File) Remove(_ context.Context, id string) error {
	f.mem.mu.Lock()
	defer f.mem.mu.Unlock()

	removed, ok := f.mem.people[id]
	if !ok {
		return nil
	}

	delete(f.mem.people, id)

	if err := f.saveLocked(); err != nil {
		f.mem.people[id] = removed

		return err
	}

	return nil
}

func (f *File) load() error {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("reading snapshot %s: %w", f.path, err)
	}

	var people map[string]model.Person
	if err := json.Unmarshal(raw, &people); err != nil {
		return fmt.Errorf("decoding snapshot %s: %w", f.path, err)
	}

	f.mem.mu.Lock()
	defer f.mem.mu.Unlock()
	f.mem.people = people

	return nil
}

func (f *File) saveLocked() error {
	raw, err := json.Marshal(f.mem.people)
	if err != nil {
		return failure.InternalError(fmt.Errorf("encoding snapshot: %w", err)) //nolint:wrapcheck
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return failure.InternalError(fmt.Errorf("writing snapshot: %w", err)) //nolint:wrapcheck
	}

	if err := os.Rename(tmp, f.path); err != nil {
		return failure.InternalError(fmt.Errorf("replacing snapshot: %w", err)) //nolint:wrapcheck
	}

	return nil
}
