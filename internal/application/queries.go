package application

import (
	"time"

	"github.com/bnema/emetic/internal/domain"
)

type CheckResult struct {
	Recorded   bool
	Checkpoint time.Time
	Records    []domain.Record
}

type UpdateResult struct {
	CheckResult
	Saved bool
}
