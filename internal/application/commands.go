package application

import (
	"time"

	"github.com/bnema/emetic/internal/domain"
)

// Credentials are the resolved login values; the password is plain text here.
type Credentials struct {
	Username string
	Password string
}

// SaveCommand carries the configured values of one temperature submission.
type SaveCommand struct {
	Temperature float64
	Symptoms    domain.Symptoms
	Note        string
}

func (c SaveCommand) record(now time.Time) domain.Record {
	return domain.Record{
		Timestamp:   now.In(domain.Zone),
		Temperature: c.Temperature,
		Symptoms:    c.Symptoms,
		Note:        c.Note,
	}
}
