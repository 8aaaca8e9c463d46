// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/runoshun/gh-issues/internal/domain"
	"github.com/runoshun/gh-issues/internal/infra/config"
	"github.com/runoshun/gh-issues/internal/infra/executor"
	"github.com/runoshun/gh-issues/internal/infra/ghapi"
	"github.com/runoshun/gh-issues/internal/infra/ghcli"
	"github.com/runoshun/gh-issues/internal/infra/git"
	"github.com/runoshun/gh-issues/internal/infra/logging"
	"github.com/runoshun/gh-issues/internal/infra/source"
	"github.com/runoshun/gh-issues/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	WorkDir string // Directory the command runs in
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Sources       domain.SourceOpener
	Executor      domain.CommandExecutor
	Repos         domain.RepoDetector

	// HTTPClient is the base client of the api backend; nil builds an
	// oauth2 client from the token.
	HTTPClient *http.Client

	// Getenv looks up environment variables.
	Getenv func(string) string

	// Configuration
	Config Config
}

// New creates a new Container for the given working directory.
func New(dir string) *Container {
	loader := config.NewLoader(dir)
	return &Container{
		ConfigLoader:  loader,
		ConfigManager: config.NewManager(loader),
		Sources:       source.NewDefaultRegistry(),
		Executor:      executor.NewClient(),
		Repos:         git.NewClient(dir),
		Getenv:        os.Getenv,
		Config:        Config{WorkDir: dir},
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, loader domain.ConfigLoader, sources domain.SourceOpener, exec domain.CommandExecutor, repos domain.RepoDetector) *Container {
	return &Container{
		ConfigLoader: loader,
		Sources:      sources,
		Executor:     exec,
		Repos:        repos,
		Getenv:       func(string) string { return "" },
		Config:       cfg,
	}
}

// NewLogger creates the run logger. A positive verbosity (the -d count)
// wins over the configured level. Entries go to cfg.Log.File when set,
// otherwise to stderr.
func (c *Container) NewLogger(cfg *domain.Config, verbosity int, stderr io.Writer) (*logging.Logger, error) {
	level := logging.ParseLevel(cfg.Log.Level)
	if verbosity > 0 {
		level = logging.LevelFromVerbosity(verbosity)
	}
	if cfg.Log.File != "" {
		return logging.NewFile(cfg.Log.File, level)
	}
	return logging.New(stderr, level), nil
}

// ResolveRepo returns the target repository. An explicit value (flag or
// config) wins; otherwise the api backend falls back to the git remote and
// the gh backend leaves the choice to gh. A dry run sends nothing, so a
// failed detection leaves the repo unset instead of failing.
func (c *Container) ResolveRepo(explicit string, backend domain.Backend, dryRun bool) (domain.Repo, error) {
	if explicit != "" {
		return domain.ParseRepo(explicit)
	}
	if backend != domain.BackendAPI || c.Repos == nil {
		return domain.Repo{}, nil
	}
	repo, err := c.Repos.DetectRepo()
	if err != nil && dryRun {
		return domain.Repo{}, nil
	}
	return repo, err
}

// Token returns the GitHub token for the api backend.
// Lookup order: config, GITHUB_TOKEN, GH_TOKEN.
func (c *Container) Token(cfg *domain.Config) string {
	if cfg.GitHub.Token != "" {
		return cfg.GitHub.Token
	}
	if c.Getenv == nil {
		return ""
	}
	if t := c.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return c.Getenv("GH_TOKEN")
}

// IssueCreatorOptions selects and configures an issue creator.
type IssueCreatorOptions struct {
	Stdout  io.Writer // receives gh output (gh backend only)
	Stderr  io.Writer
	Backend domain.Backend
	Repo    domain.Repo
	DryRun  bool // only Describe will be called; no credentials needed
}

// NewIssueCreator returns the creator for opts.Backend.
func (c *Container) NewIssueCreator(cfg *domain.Config, opts IssueCreatorOptions) (domain.IssueCreator, error) {
	switch opts.Backend {
	case domain.BackendGH, "":
		return ghcli.New(c.Executor, ghcli.Options{
			Stdout:  opts.Stdout,
			Stderr:  opts.Stderr,
			Program: cfg.GH.Path,
			Dir:     c.Config.WorkDir,
			Repo:    opts.Repo,
		}), nil
	case domain.BackendAPI:
		if opts.DryRun {
			return ghapi.NewWithService(nil, opts.Repo), nil
		}
		client, err := ghapi.New(ghapi.Options{
			HTTPClient: c.HTTPClient,
			Token:      c.Token(cfg),
			BaseURL:    cfg.GitHub.BaseURL,
			Repo:       opts.Repo,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidBackend, opts.Backend)
	}
}

// UseCase factory methods

// CreateIssuesUseCase returns a new CreateIssues use case.
func (c *Container) CreateIssuesUseCase(creator domain.IssueCreator, logger domain.Logger) *usecase.CreateIssues {
	return usecase.NewCreateIssues(c.Sources, creator, logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
