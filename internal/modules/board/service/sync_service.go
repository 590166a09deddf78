package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lifeos/internal/modules/board/domain"
	boardout "lifeos/internal/modules/board/port/out"
	"lifeos/internal/platform/clock"
	apperrors "lifeos/internal/platform/errors"
	"lifeos/internal/platform/id"
)

// SyncService keeps the board consistent with the server. Optimistic
// mutations are applied under the lock before any network call; network
// calls run without the lock.
type SyncService struct {
	mu    sync.Mutex
	board *domain.Board

	niches    boardout.NicheGateway
	tasks     boardout.TaskGateway
	profiles  boardout.ProfileGateway
	assistant boardout.Assistant

	clock    clock.Clock
	ids      id.Generator
	logger   *zap.Logger
	fallback int64
}

type Deps struct {
	Niches          boardout.NicheGateway
	Tasks           boardout.TaskGateway
	Profiles        boardout.ProfileGateway
	Assistant       boardout.Assistant
	Clock           clock.Clock
	IDs             id.Generator
	Logger          *zap.Logger
	FallbackNicheID int64
}

func NewSyncService(d Deps) *SyncService {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		board:     domain.NewBoard(),
		niches:    d.Niches,
		tasks:     d.Tasks,
		profiles:  d.Profiles,
		assistant: d.Assistant,
		clock:     d.Clock,
		ids:       d.IDs,
		logger:    logger.Named("board"),
		fallback:  d.FallbackNicheID,
	}
}

func (s *SyncService) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Snapshot()
}

func (s *SyncService) with(fn func(b *domain.Board)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.board)
}

// Load is the visible bootstrap fetch.
func (s *SyncService) Load(ctx context.Context) error { return s.Refresh(ctx, false) }

// Refresh refetches niches, tasks and profile concurrently. A quiet refresh
// never touches Loading or Err and only logs its failures.
func (s *SyncService) Refresh(ctx context.Context, quiet bool) error {
	if !quiet {
		s.with(func(b *domain.Board) { b.SetLoading(true) })
	}

	var (
		niches  []domain.Niche
		tasks   []domain.Task
		profile domain.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		niches, err = s.niches.ListNiches(gctx)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = s.tasks.ListTasks(gctx, 0)
		return err
	})
	g.Go(func() (err error) {
		profile, err = s.profiles.GetProfile(gctx)
		return err
	})
	err := g.Wait()

	if ctx.Err() != nil {
		if !quiet {
			s.with(func(b *domain.Board) { b.SetLoading(false) })
		}
		return ctx.Err()
	}
	if err != nil {
		if quiet {
			s.logger.Debug("quiet refresh failed", zap.Error(err))
			return err
		}
		s.with(func(b *domain.Board) {
			b.SetLoading(false)
			b.SetError(err.Error())
		})
		return fmt.Errorf("refresh board: %w", err)
	}

	s.with(func(b *domain.Board) {
		b.ReplaceNiches(niches)
		b.ReplaceTasks(tasks)
		b.ReplaceProfile(profile)
		b.MarkSynced(s.clock.Now())
		if !quiet {
			b.SetLoading(false)
			b.SetError("")
		}
	})
	return nil
}

func (s *SyncService) RefreshTasks(ctx context.Context) error {
	tasks, err := s.tasks.ListTasks(ctx, 0)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.with(func(b *domain.Board) {
		b.ReplaceTasks(tasks)
		b.MarkSynced(s.clock.Now())
	})
	return nil
}

// ListTasks fetches tasks without touching the board. nicheID 0 lists all.
func (s *SyncService) ListTasks(ctx context.Context, nicheID int64) ([]domain.Task, error) {
	tasks, err := s.tasks.ListTasks(ctx, nicheID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *SyncService) RefreshProfile(ctx context.Context) (domain.Profile, error) {
	p, err := s.profiles.GetProfile(ctx)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if ctx.Err() != nil {
		return domain.Profile{}, ctx.Err()
	}
	s.with(func(b *domain.Board) { b.ReplaceProfile(p) })
	return p, nil
}

// ─── toggle ──────────────────────────────────────────────────────────────────

// BeginToggle applies the optimistic toggle and returns the pending op. It
// performs no I/O.
func (s *SyncService) BeginToggle(taskID int64) (domain.Op, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Toggle(s.ids.New(), taskID)
}

type ToggleResult struct {
	Op           domain.Op
	Profile      domain.Profile
	LevelUp      bool
	ProfileStale bool
}

// CommitToggle logs the intended status and resynchronizes the profile. A
// rejected log call undoes the optimistic toggle.
func (s *SyncService) CommitToggle(ctx context.Context, op domain.Op) (ToggleResult, error) {
	before := s.Snapshot()

	res, err := s.tasks.LogTask(ctx, op.TaskID, op.Status, "")
	if err != nil {
		if ctx.Err() != nil {
			return ToggleResult{Op: op}, ctx.Err()
		}
		s.with(func(b *domain.Board) {
			if b.Compensate(op.ID) {
				s.logger.Warn("toggle rolled back", zap.Int64("task", op.TaskID), zap.String("op", op.ID), zap.Error(err))
			}
		})
		return ToggleResult{Op: op}, fmt.Errorf("log task %d: %w", op.TaskID, err)
	}
	s.with(func(b *domain.Board) { b.Settle(op.ID) })

	out := ToggleResult{Op: op}
	profile, err := s.resyncProfile(ctx, res.Profile)
	if err != nil {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		s.logger.Warn("profile resync after log failed", zap.Int64("task", op.TaskID), zap.Error(err))
		out.ProfileStale = true
		out.Profile = s.Snapshot().Profile
		return out, nil
	}
	out.Profile = profile
	out.LevelUp = before.HasProfile && profile.Level > before.Profile.Level
	return out, nil
}

// resyncProfile installs the profile from a log response verbatim, or
// refetches it when the response carried none.
func (s *SyncService) resyncProfile(ctx context.Context, inline *domain.Profile) (domain.Profile, error) {
	if inline != nil {
		p := *inline
		s.with(func(b *domain.Board) { b.ReplaceProfile(p) })
		return p, nil
	}
	return s.RefreshProfile(ctx)
}

func (s *SyncService) Toggle(ctx context.Context, taskID int64) (ToggleResult, error) {
	op, err := s.BeginToggle(taskID)
	if err != nil {
		return ToggleResult{}, err
	}
	return s.CommitToggle(ctx, op)
}

// ─── delete ──────────────────────────────────────────────────────────────────

func (s *SyncService) BeginDelete(taskID int64) (domain.Op, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Remove(s.ids.New(), taskID)
}

func (s *SyncService) CommitDelete(ctx context.Context, op domain.Op) error {
	if err := s.tasks.DeleteTask(ctx, op.TaskID); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.with(func(b *domain.Board) { b.Compensate(op.ID) })
		return fmt.Errorf("delete task %d: %w", op.TaskID, err)
	}
	s.with(func(b *domain.Board) { b.Settle(op.ID) })
	return nil
}

// ─── create / edit ───────────────────────────────────────────────────────────

// TaskInput describes a task to create or update. A nil Recurring leaves
// the stored recurrence alone on update and means one-time on create.
type TaskInput struct {
	Title         string
	Description   string
	NicheID       int64
	Recurring     *bool
	ScheduledTime string
}

func (s *SyncService) draft(in TaskInput) (domain.TaskDraft, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.TaskDraft{}, fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	niches := s.Snapshot().Niches
	d := domain.TaskDraft{
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		NicheID:       domain.ResolveNicheID(in.NicheID, niches, s.fallback),
		ScheduledTime: in.ScheduledTime,
	}
	if in.Recurring != nil {
		recurring := *in.Recurring
		d.Recurring = &recurring
	}
	return d, nil
}

func (s *SyncService) CreateTask(ctx context.Context, in TaskInput) (domain.Task, error) {
	d, err := s.draft(in)
	if err != nil {
		return domain.Task{}, err
	}
	if d.Recurring == nil {
		d.Recurring = new(bool)
	}
	task, err := s.tasks.CreateTask(ctx, d)
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	if ctx.Err() != nil {
		return task, ctx.Err()
	}
	s.with(func(b *domain.Board) { b.PrependTask(task) })
	return task, nil
}

func (s *SyncService) EditTask(ctx context.Context, id int64, in TaskInput) (domain.Task, error) {
	d, err := s.draft(in)
	if err != nil {
		return domain.Task{}, err
	}
	task, err := s.tasks.UpdateTask(ctx, id, d)
	if err != nil {
		return domain.Task{}, fmt.Errorf("update task %d: %w", id, err)
	}
	if ctx.Err() != nil {
		return task, ctx.Err()
	}
	s.with(func(b *domain.Board) { b.ReplaceTask(task) })
	return task, nil
}

// ─── assistant ───────────────────────────────────────────────────────────────

type Draft struct {
	Suggestion domain.Suggestion
	Niche      domain.Niche
	Matched    bool
}

// MagicDraft asks the assistant to rewrite free text into a task draft and
// maps its niche suggestion onto a loaded niche.
func (s *SyncService) MagicDraft(ctx context.Context, text string) (Draft, error) {
	if strings.TrimSpace(text) == "" {
		return Draft{}, fmt.Errorf("%w: text is required", apperrors.ErrInvalidInput)
	}
	sug, err := s.assistant.Parse(ctx, text)
	if err != nil {
		return Draft{}, fmt.Errorf("parse task: %w", err)
	}
	n, ok := domain.MatchNiche(sug.NicheSuggested, s.Snapshot().Niches)
	return Draft{Suggestion: sug, Niche: n, Matched: ok}, nil
}

type BreakdownResult struct {
	Created []domain.Task
	Total   int
}

// BreakDown creates one task per suggested subtask, in order, then refetches
// the whole task list. The refetch runs even when a create fails.
func (s *SyncService) BreakDown(ctx context.Context, goal string) (BreakdownResult, error) {
	if strings.TrimSpace(goal) == "" {
		return BreakdownResult{}, fmt.Errorf("%w: goal is required", apperrors.ErrInvalidInput)
	}
	subtasks, err := s.assistant.Breakdown(ctx, goal)
	if err != nil {
		return BreakdownResult{}, fmt.Errorf("break down goal: %w", err)
	}
	out := BreakdownResult{Total: len(subtasks)}
	niches := s.Snapshot().Niches

	var createErr error
	for _, sub := range subtasks {
		var nicheID int64
		if n, ok := domain.MatchNiche(sub.Niche, niches); ok {
			nicheID = n.ID
		}
		d, err := s.draft(TaskInput{Title: sub.Title, NicheID: nicheID})
		if err != nil {
			s.logger.Debug("skipping empty subtask", zap.String("goal", goal))
			continue
		}
		task, err := s.tasks.CreateTask(ctx, d)
		if err != nil {
			createErr = fmt.Errorf("create subtask %q: %w", d.Title, err)
			break
		}
		out.Created = append(out.Created, task)
	}

	if ctx.Err() != nil {
		return out, ctx.Err()
	}
	if err := s.RefreshTasks(ctx); err != nil {
		return out, errors.Join(createErr, err)
	}
	return out, createErr
}

// ─── niches ──────────────────────────────────────────────────────────────────

func (s *SyncService) CreateNiche(ctx context.Context, draft domain.NicheDraft) (domain.Niche, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return domain.Niche{}, fmt.Errorf("%w: niche name is required", apperrors.ErrInvalidInput)
	}
	if draft.Icon == "" {
		draft.Icon = string(domain.Classify(draft.Name))
	}
	n, err := s.niches.CreateNiche(ctx, draft)
	if err != nil {
		return domain.Niche{}, fmt.Errorf("create niche: %w", err)
	}
	if ctx.Err() != nil {
		return n, ctx.Err()
	}
	s.with(func(b *domain.Board) {
		niches := append(b.Snapshot().Niches, n)
		b.ReplaceNiches(niches)
	})
	return n, nil
}

// DeleteNiche removes the niche and refetches tasks, which the server moves
// to "uncategorized".
func (s *SyncService) DeleteNiche(ctx context.Context, id int64) error {
	if err := s.niches.DeleteNiche(ctx, id); err != nil {
		return fmt.Errorf("delete niche %d: %w", id, err)
	}
	niches, err := s.niches.ListNiches(ctx)
	if err != nil {
		return fmt.Errorf("list niches: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.with(func(b *domain.Board) { b.ReplaceNiches(niches) })
	return s.RefreshTasks(ctx)
}

// ─── profile ─────────────────────────────────────────────────────────────────

// PatchProfile applies patch optimistically and persists it. When the patch
// is rejected the profile is refetched; if that fails too the pre-patch
// profile is restored.
func (s *SyncService) PatchProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
	if patch.Empty() {
		return domain.Profile{}, fmt.Errorf("%w: empty profile patch", apperrors.ErrInvalidInput)
	}
	s.mu.Lock()
	op, err := s.board.PatchProfile(s.ids.New(), patch)
	s.mu.Unlock()
	if err != nil {
		return domain.Profile{}, err
	}

	saved, err := s.profiles.PatchProfile(ctx, patch)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Profile{}, ctx.Err()
		}
		if _, fetchErr := s.RefreshProfile(ctx); fetchErr != nil {
			s.with(func(b *domain.Board) { b.Compensate(op.ID) })
			s.logger.Warn("profile patch rolled back", zap.Error(err), zap.NamedError("refetch", fetchErr))
		} else {
			s.with(func(b *domain.Board) { b.Settle(op.ID) })
		}
		return domain.Profile{}, fmt.Errorf("patch profile: %w", err)
	}
	s.with(func(b *domain.Board) {
		b.Settle(op.ID)
		b.ReplaceProfile(saved)
	})
	return saved, nil
}

// LinkTelegram stores the chat id notifications are sent to.
func (s *SyncService) LinkTelegram(ctx context.Context, chatID string) (domain.Profile, error) {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return domain.Profile{}, fmt.Errorf("%w: chat id is required", apperrors.ErrInvalidInput)
	}
	return s.PatchProfile(ctx, domain.ProfilePatch{TelegramChatID: &chatID})
}

func (s *SyncService) Stats(ctx context.Context) (domain.Stats, error) {
	st, err := s.profiles.GetStats(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("get stats: %w", err)
	}
	return st, nil
}
