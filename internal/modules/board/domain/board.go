package domain

import (
	"fmt"
	"strconv"
	"time"

	apperrors "lifeos/internal/platform/errors"
)

// State is the client-side copy of server data plus view status.
type State struct {
	Niches     []Niche
	Tasks      []Task
	Profile    Profile
	HasProfile bool
	Loading    bool
	Err        string
	SyncedAt   time.Time
}

func (s State) Clone() State {
	out := s
	out.Niches = append([]Niche(nil), s.Niches...)
	out.Tasks = make([]Task, len(s.Tasks))
	for i, t := range s.Tasks {
		out.Tasks[i] = t.clone()
	}
	return out
}

func (s State) TaskIndex(id int64) int {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

type OpKind string

const (
	OpToggle  OpKind = "toggle"
	OpDelete  OpKind = "delete"
	OpProfile OpKind = "profile"
)

// Op is an optimistic mutation waiting for server confirmation. It records
// what is needed to undo it.
type Op struct {
	ID     string
	Kind   OpKind
	TaskID int64
	// Status is the log status a toggle must send.
	Status LogStatus

	prevTask    Task
	prevIndex   int
	prevProfile Profile
}

func (o Op) entity() string {
	if o.Kind == OpProfile {
		return "profile"
	}
	return "task:" + strconv.FormatInt(o.TaskID, 10)
}

// Board applies optimistic mutations and their compensations. It is not
// safe for concurrent use; callers serialize access.
type Board struct {
	state  State
	ops    map[string]Op
	latest map[string]string
}

func NewBoard() *Board {
	return &Board{ops: map[string]Op{}, latest: map[string]string{}}
}

func (b *Board) Snapshot() State { return b.state.Clone() }

func (b *Board) SetLoading(v bool) { b.state.Loading = v }

func (b *Board) SetError(msg string) { b.state.Err = msg }

func (b *Board) MarkSynced(at time.Time) { b.state.SyncedAt = at }

func (b *Board) ReplaceNiches(niches []Niche) {
	b.state.Niches = append([]Niche(nil), niches...)
}

// ReplaceTasks installs server truth. Outstanding task compensations are
// dropped: the newer server response wins over a stale undo.
func (b *Board) ReplaceTasks(tasks []Task) {
	b.state.Tasks = make([]Task, len(tasks))
	for i, t := range tasks {
		b.state.Tasks[i] = t.clone()
	}
	for key := range b.latest {
		if key != "profile" {
			delete(b.latest, key)
		}
	}
}

func (b *Board) ReplaceProfile(p Profile) {
	b.state.Profile = p
	b.state.HasProfile = true
	delete(b.latest, "profile")
}

func (b *Board) PrependTask(t Task) {
	b.state.Tasks = append([]Task{t.clone()}, b.state.Tasks...)
}

// ReplaceTask swaps the task with the same id in place. It reports false when
// the task is not on the board.
func (b *Board) ReplaceTask(t Task) bool {
	i := b.state.TaskIndex(t.ID)
	if i < 0 {
		return false
	}
	b.state.Tasks[i] = t.clone()
	delete(b.latest, "task:"+strconv.FormatInt(t.ID, 10))
	return true
}

// Toggle removes a one-time task or flips a recurring task's flag. The
// returned op carries the status to log, derived from the pre-toggle flag.
func (b *Board) Toggle(opID string, taskID int64) (Op, error) {
	i := b.state.TaskIndex(taskID)
	if i < 0 {
		return Op{}, fmt.Errorf("%w: task %d", apperrors.ErrNotFound, taskID)
	}
	prev := b.state.Tasks[i].clone()
	op := Op{
		ID:        opID,
		Kind:      OpToggle,
		TaskID:    taskID,
		Status:    NextStatus(prev.IsDoneToday),
		prevTask:  prev,
		prevIndex: i,
	}
	if prev.OneTime() {
		b.state.Tasks = append(b.state.Tasks[:i:i], b.state.Tasks[i+1:]...)
	} else {
		b.state.Tasks[i].IsDoneToday = !prev.IsDoneToday
	}
	b.track(op)
	return op, nil
}

func (b *Board) Remove(opID string, taskID int64) (Op, error) {
	i := b.state.TaskIndex(taskID)
	if i < 0 {
		return Op{}, fmt.Errorf("%w: task %d", apperrors.ErrNotFound, taskID)
	}
	op := Op{ID: opID, Kind: OpDelete, TaskID: taskID, prevTask: b.state.Tasks[i].clone(), prevIndex: i}
	b.state.Tasks = append(b.state.Tasks[:i:i], b.state.Tasks[i+1:]...)
	b.track(op)
	return op, nil
}

func (b *Board) PatchProfile(opID string, patch ProfilePatch) (Op, error) {
	if !b.state.HasProfile {
		return Op{}, fmt.Errorf("%w: profile not loaded", apperrors.ErrNotFound)
	}
	op := Op{ID: opID, Kind: OpProfile, prevProfile: b.state.Profile}
	b.state.Profile = b.state.Profile.Apply(patch)
	b.track(op)
	return op, nil
}

func (b *Board) track(op Op) {
	b.ops[op.ID] = op
	b.latest[op.entity()] = op.ID
}

// Settle forgets a confirmed op.
func (b *Board) Settle(opID string) {
	op, ok := b.ops[opID]
	if !ok {
		return
	}
	delete(b.ops, opID)
	if b.latest[op.entity()] == opID {
		delete(b.latest, op.entity())
	}
}

// Compensate undoes a rejected op. The undo only happens while the op is
// still the latest change to its entity; it reports whether it was applied.
func (b *Board) Compensate(opID string) bool {
	op, ok := b.ops[opID]
	if !ok {
		return false
	}
	delete(b.ops, opID)
	key := op.entity()
	if b.latest[key] != opID {
		return false
	}
	delete(b.latest, key)

	switch op.Kind {
	case OpProfile:
		b.state.Profile = op.prevProfile
	case OpToggle, OpDelete:
		if i := b.state.TaskIndex(op.TaskID); i >= 0 {
			b.state.Tasks[i] = op.prevTask.clone()
			return true
		}
		at := op.prevIndex
		if at > len(b.state.Tasks) {
			at = len(b.state.Tasks)
		}
		tasks := make([]Task, 0, len(b.state.Tasks)+1)
		tasks = append(tasks, b.state.Tasks[:at]...)
		tasks = append(tasks, op.prevTask.clone())
		tasks = append(tasks, b.state.Tasks[at:]...)
		b.state.Tasks = tasks
	}
	return true
}

// Pending reports how many ops are awaiting confirmation.
func (b *Board) Pending() int { return len(b.ops) }
