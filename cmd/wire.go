package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	recordsrender "github.com/bnema/emetic/internal/adapters/render/records"
	chainstore "github.com/bnema/emetic/internal/adapters/secrets/chain"
	"github.com/bnema/emetic/internal/domain"
	"github.com/bnema/emetic/internal/ports"
)

type app struct {
	homeDir        string
	secretStore    ports.SecretStore
	recordRenderer func([]domain.Record, recordsrender.RenderOptions) (string, error)
	httpClient     *http.Client
	now            func() time.Time
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(homeDir, ".emetic", "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		homeDir:        homeDir,
		secretStore:    secretStore,
		recordRenderer: recordsrender.Render,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		now:            time.Now,
	}, nil
}

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time {
	return f()
}
