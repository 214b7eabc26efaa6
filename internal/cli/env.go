package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
	"github.com/dpsrawaljnv/mcq-test-application/internal/config"
	"github.com/dpsrawaljnv/mcq-test-application/internal/identity"
)

// env bundles the resolved configuration and stores a command needs.
type env struct {
	cfg         config.Config
	client      *api.Client
	students    *identity.StudentStore
	credentials *identity.CredentialStore
	historyPath string
}

// loadEnv resolves config and store paths for a command invocation.
func loadEnv() (*env, error) {
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	studentPath, err := config.StudentInfoPath()
	if err != nil {
		return nil, err
	}
	credsPath, err := config.CredentialsPath()
	if err != nil {
		return nil, err
	}
	historyPath, err := config.HistoryDBPath()
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:         cfg,
		client:      api.NewWithTimeout(cfg.BaseURL, cfg.Timeout()),
		students:    identity.NewStudentStore(studentPath),
		credentials: identity.NewCredentialStore(credsPath),
		historyPath: historyPath,
	}, nil
}

// authedClient returns a client carrying the stored token, checking that
// the stored role is one of the allowed ones.
func (e *env) authedClient(allowed ...string) (*api.Client, identity.Credentials, error) {
	creds, err := e.credentials.Load()
	if err != nil {
		return nil, identity.Credentials{}, err
	}
	for _, role := range allowed {
		if creds.Role == role {
			return e.client.WithToken(creds.Token), creds, nil
		}
	}
	return nil, identity.Credentials{}, fmt.Errorf("logged in as %s; this command needs %s", creds.Role, joinRoles(allowed))
}

func joinRoles(roles []string) string {
	switch len(roles) {
	case 0:
		return "a login"
	case 1:
		return roles[0]
	default:
		out := roles[0]
		for _, role := range roles[1:] {
			out += " or " + role
		}
		return out
	}
}

// requestContext returns a context bounded by the configured timeout.
func (e *env) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), e.cfg.Timeout())
}

// timeout exposes the configured request timeout.
func (e *env) timeout() time.Duration {
	return e.cfg.Timeout()
}

// fail prints an error and returns the error exit code.
func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitError
}
