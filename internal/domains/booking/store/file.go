package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"weekgrid/infras/otel"
	"weekgrid/internal/domains/booking/model"
	"weekgrid/shared/constant"
	"weekgrid/shared/failure"
)

// File is the memory store plus a durable JSON snapshot: a flat mapping
// from booking id to record, the same layout the browser widget keeps under
// its versioned localStorage key. The snapshot is read once on open and
// rewritten after every mutation; read-modify-write stays serialized behind
// the memory store's lock, but two processes sharing one snapshot file are
// not coordinated and the last writer wins.
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

func (f *File) ListForWeek(ctx context.Context, weekKey string) ([]model.Booking, error) {
	return f.mem.ListForWeek(ctx, weekKey)
}

func (f *File) Create(ctx context.Context, booking model.Booking, exclusiveTitle bool) (model.Booking, error) {
	_, scope := f.mem.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".file.Create")
	defer scope.End()

	f.mem.mu.Lock()
	defer f.mem.mu.Unlock()

	created, err := f.mem.insertLocked(booking, exclusiveTitle)
	if err != nil {
		return model.Booking{}, err
	}

	if err := f.saveLocked(); err != nil {
		// Roll the in-memory copy back so a failed write never leaves the
		// snapshot and the process view disagreeing.
		f.mem.deleteLocked(created.ID, created.WeekKey)

		return model.Booking{}, err
	}

	return created, nil
}

func (f *File) Delete(ctx context.Context, id, weekKey string) error {
	_, scope := f.mem.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".file.Delete")
	defer scope.End()

	f.mem.mu.Lock()
	defer f.mem.mu.Unlock()

	removed, ok := f.mem.deleteLocked(id, weekKey)
	if !ok {
		return nil
	}

	if err := f.saveLocked(); err != nil {
		// Same contract as Create: a failed write must leave the process
		// view matching the snapshot, so the record goes back.
		_, _ = f.mem.insertLocked(removed, false)

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

	var flat map[string]model.Booking
	if err := json.Unmarshal(raw, &flat); err != nil {
		return fmt.Errorf("decoding snapshot %s: %w", f.path, err)
	}

	f.mem.mu.Lock()
	defer f.mem.mu.Unlock()
	f.mem.restoreLocked(flat)

	return nil
}

func (f *File) saveLocked() error {
	raw, err := json.Marshal(f.mem.snapshotLocked())
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
