package ports

import (
	"context"

	"github.com/bnema/emetic/internal/domain"
)

// Protocol is the authenticated request engine the command service drives.
type Protocol interface {
	HasAnchor() bool
	Login(ctx context.Context, username, password string) error
	FetchRole(ctx context.Context) (domain.Identity, error)
	Select(ctx context.Context, identity domain.Identity) ([]domain.Record, error)
	Save(ctx context.Context, identity domain.Identity, record domain.Record) error
	Snapshot() map[string]string
}

// Progress receives the human-facing notes printed in verbose mode. A Step
// stays open on its line until Done reports its outcome.
type Progress interface {
	Step(message string)
	Done(outcome string)
	Note(message string)
}

type NopProgress struct{}

func (NopProgress) Step(string) {}
func (NopProgress) Done(string) {}
func (NopProgress) Note(string) {}
