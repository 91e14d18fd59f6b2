package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/emetic/internal/domain"
	"github.com/bnema/emetic/internal/ports"
)

const DefaultRetries = 2

// Service runs the user-facing commands over the protocol, re-authenticating
// when the server reports the session expired.
type Service struct {
	protocol ports.Protocol
	clock    ports.Clock
	progress ports.Progress
	logger   *slog.Logger
	creds    Credentials
	identity domain.Identity
	retries  int
}

type Option func(*Service)

// WithRetries sets how many times a command may run before giving up on
// expired sessions. Values below one are treated as one.
func WithRetries(retries int) Option {
	return func(s *Service) {
		s.retries = retries
	}
}

func WithProgress(progress ports.Progress) Option {
	return func(s *Service) {
		s.progress = progress
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(protocol ports.Protocol, creds Credentials, identity domain.Identity, clock ports.Clock, opts ...Option) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &Service{
		protocol: protocol,
		clock:    clock,
		progress: ports.NopProgress{},
		logger:   slog.Default(),
		creds:    creds,
		identity: identity,
		retries:  DefaultRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.retries < 1 {
		s.retries = 1
	}

	return s
}

// State is what the cache should persist after a command, successful or not.
func (s *Service) State() domain.CacheState {
	return domain.CacheState{
		Cookies:  s.protocol.Snapshot(),
		Identity: s.identity,
	}
}

func (s *Service) Save(ctx context.Context, cmd SaveCommand) error {
	return s.run(ctx, "save", func(ctx context.Context) error {
		return s.save(ctx, cmd)
	})
}

func (s *Service) Select(ctx context.Context) ([]domain.Record, error) {
	var records []domain.Record
	err := s.run(ctx, "select", func(ctx context.Context) error {
		var err error
		records, err = s.load(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Check reports whether a record exists at or after the current half-day checkpoint.
func (s *Service) Check(ctx context.Context) (CheckResult, error) {
	var result CheckResult
	err := s.run(ctx, "check", func(ctx context.Context) error {
		var err error
		result, err = s.check(ctx)
		return err
	})
	if err != nil {
		return CheckResult{}, err
	}

	return result, nil
}

// Update saves the record only when Check finds nothing for the current half day.
func (s *Service) Update(ctx context.Context, cmd SaveCommand) (UpdateResult, error) {
	var result UpdateResult
	err := s.run(ctx, "update", func(ctx context.Context) error {
		checked, err := s.check(ctx)
		if err != nil {
			return err
		}
		result = UpdateResult{CheckResult: checked}
		if checked.Recorded {
			return nil
		}

		if err := s.save(ctx, cmd); err != nil {
			return err
		}
		result.Saved = true
		return nil
	})
	if err != nil {
		return UpdateResult{}, err
	}

	return result, nil
}

func (s *Service) save(ctx context.Context, cmd SaveCommand) error {
	s.progress.Step("uploading temperature data...")
	if err := s.protocol.Save(ctx, s.identity, cmd.record(s.clock.Now())); err != nil {
		return err
	}
	s.progress.Done("success")
	return nil
}

func (s *Service) load(ctx context.Context) ([]domain.Record, error) {
	s.progress.Step("loading temperature data...")
	records, err := s.protocol.Select(ctx, s.identity)
	if err != nil {
		return nil, err
	}
	s.progress.Done("success")
	return records, nil
}

func (s *Service) check(ctx context.Context) (CheckResult, error) {
	records, err := s.load(ctx)
	if err != nil {
		return CheckResult{}, err
	}

	now := s.clock.Now()
	result := CheckResult{
		Recorded:   domain.RecordedSince(records, now),
		Checkpoint: domain.Checkpoint(now),
		Records:    records,
	}
	if result.Recorded {
		s.progress.Note("temperature already recorded")
	} else {
		s.progress.Note("no record yet")
	}

	return result, nil
}

func (s *Service) authenticated() bool {
	return s.protocol.HasAnchor() && s.identity.Complete()
}

func (s *Service) authenticate(ctx context.Context) error {
	s.progress.Step("try logging in...")
	if err := s.protocol.Login(ctx, s.creds.Username, s.creds.Password); err != nil {
		s.progress.Done("failed")
		return fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
	}
	s.progress.Done("success")

	s.progress.Step("getting role data...")
	identity, err := s.protocol.FetchRole(ctx)
	if err != nil {
		s.progress.Done("failed")
		return fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
	}
	s.identity = identity
	s.progress.Done("success")

	return nil
}

// run executes command from the start on every attempt. Only ErrAuthExpired
// consumes the budget; the first login of a fresh session does not.
func (s *Service) run(ctx context.Context, name string, command func(ctx context.Context) error) error {
	if !s.authenticated() {
		s.logger.Debug("session not established", slog.String("command", name))
		if err := s.authenticate(ctx); err != nil {
			return err
		}
	}

	var expired error
	for budget := s.retries; budget > 0; budget-- {
		err := command(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrAuthExpired) {
			return err
		}

		expired = err
		s.logger.Info("login cookie rejected",
			slog.String("command", name),
			slog.Int("remaining", budget-1),
		)
		s.progress.Note("login cookie rejected")
		if err := s.authenticate(ctx); err != nil {
			return err
		}
	}

	return fmt.Errorf("%s: %w: %w", name, domain.ErrAuthRetryExhausted, expired)
}
