package domain

import (
	"context"
	"io"
)

// IssueReader yields the records of one input file, lazily and once.
type IssueReader interface {
	// Next returns the next record, or io.EOF when the input is exhausted.
	// After a ParseError the reader must not be used further.
	Next() (Record, error)

	// Close releases the underlying file.
	Close() error
}

// SourceOpener opens input files by format.
type SourceOpener interface {
	// Open resolves the format first and fails with UnsupportedFormatError
	// without touching path when no reader exists for it.
	Open(format Format, path string) (IssueReader, error)

	// Formats returns the registered formats in a stable order.
	Formats() []Format
}

// IssueCreator creates one remote issue.
type IssueCreator interface {
	// Create creates the issue and blocks until the tracker has answered.
	Create(ctx context.Context, issue Issue) (*CreatedIssue, error)

	// Describe renders what Create would do, for dry runs.
	Describe(issue Issue) string
}

// CommandExecutor runs external commands.
type CommandExecutor interface {
	// ExecuteWithContext runs the command with the given stdout/stderr writers.
	ExecuteWithContext(ctx context.Context, cmd *ExecCommand, stdout, stderr io.Writer) error
}

// Logger writes diagnostic messages. row is the 1-based input record the
// message is about, or 0 for messages about the run as a whole.
type Logger interface {
	Debug(row int, category, msg string)
	Info(row int, category, msg string)
	Warn(row int, category, msg string)
	Error(row int, category, msg string)
}

// ConfigLoader loads configuration.
type ConfigLoader interface {
	// Load returns the merged configuration (repo + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// RepoDetector resolves the GitHub repository of the working directory.
type RepoDetector interface {
	DetectRepo() (Repo, error)
}

// ConfigInfo describes one configuration file.
// Fields are ordered to minimize memory padding.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates configuration files.
type ConfigManager interface {
	GetGlobalConfigInfo() ConfigInfo
	GetRepoConfigInfo() ConfigInfo

	// InitGlobalConfig writes the template to the global config path.
	// It fails with ErrConfigExists unless force is set.
	InitGlobalConfig(force bool) error

	// InitRepoConfig writes the template to the repository config path.
	InitRepoConfig(force bool) error
}
