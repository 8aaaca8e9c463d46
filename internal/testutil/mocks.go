// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/runoshun/gh-issues/internal/domain"
)

// ExitError is a test double for *exec.ExitError.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the configured exit status.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExecResult is the scripted outcome of one command execution.
type ExecResult struct {
	Err    error
	Stdout string
	Stderr string
}

// MockCommandExecutor is a test double for domain.CommandExecutor.
// It records every command and replays Results in order; once Results is
// exhausted, Default is used.
// Fields are ordered to minimize memory padding.
type MockCommandExecutor struct {
	Commands []*domain.ExecCommand
	Results  []ExecResult
	Default  ExecResult
	mu       sync.Mutex
}

func (m *MockCommandExecutor) next(cmd *domain.ExecCommand) ExecResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, cmd)
	if len(m.Results) == 0 {
		return m.Default
	}
	res := m.Results[0]
	m.Results = m.Results[1:]
	return res
}

// ExecuteWithContext records the command and writes the scripted output.
func (m *MockCommandExecutor) ExecuteWithContext(ctx context.Context, cmd *domain.ExecCommand, stdout, stderr io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res := m.next(cmd)
	if stdout != nil {
		_, _ = io.WriteString(stdout, res.Stdout)
	}
	if stderr != nil {
		_, _ = io.WriteString(stderr, res.Stderr)
	}
	return res.Err
}

// MockIssueCreator is a test double for domain.IssueCreator.
// Errs maps a 1-based call number to the error that call returns.
// Fields are ordered to minimize memory padding.
type MockIssueCreator struct {
	Errs    map[int]error
	OnCall  func(n int)
	Created []domain.Issue
	Calls   int
}

// Create records the issue and returns a fake URL or the scripted error.
func (m *MockIssueCreator) Create(_ context.Context, issue domain.Issue) (*domain.CreatedIssue, error) {
	m.Calls++
	if m.OnCall != nil {
		m.OnCall(m.Calls)
	}
	if err := m.Errs[m.Calls]; err != nil {
		return nil, err
	}
	m.Created = append(m.Created, issue)
	return &domain.CreatedIssue{
		URL:    fmt.Sprintf("https://github.com/acme/widgets/issues/%d", m.Calls),
		Number: m.Calls,
	}, nil
}

// Describe returns a short description of the issue.
func (m *MockIssueCreator) Describe(issue domain.Issue) string {
	return "create " + issue.Title
}

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	Row      int
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level string, row int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Row: row, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(row int, category, msg string) { m.add("DEBUG", row, category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(row int, category, msg string) { m.add("INFO", row, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(row int, category, msg string) { m.add("WARN", row, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(row int, category, msg string) { m.add("ERROR", row, category, msg) }

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a MockConfigLoader returning the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	return m.Load()
}

// MockRepoDetector is a test double for domain.RepoDetector.
type MockRepoDetector struct {
	Err   error
	Repo  domain.Repo
	Calls int
}

// DetectRepo returns the configured repo.
func (m *MockRepoDetector) DetectRepo() (domain.Repo, error) {
	m.Calls++
	return m.Repo, m.Err
}

// MockIssueReader is a test double for domain.IssueReader.
// It yields Records in order, then Err (io.EOF when Err is nil).
// Fields are ordered to minimize memory padding.
type MockIssueReader struct {
	Err     error
	Records []domain.Record
	Reads   int
	Closed  bool
}

// Next returns the next scripted record.
func (m *MockIssueReader) Next() (domain.Record, error) {
	if m.Reads < len(m.Records) {
		rec := m.Records[m.Reads]
		m.Reads++
		return rec, nil
	}
	if m.Err != nil {
		return domain.Record{}, m.Err
	}
	return domain.Record{}, io.EOF
}

// Close marks the reader closed.
func (m *MockIssueReader) Close() error {
	m.Closed = true
	return nil
}

// MockSourceOpener is a test double for domain.SourceOpener.
// Fields are ordered to minimize memory padding.
type MockSourceOpener struct {
	Reader  *MockIssueReader
	OpenErr error
	Path    string
	Format  domain.Format
	Opens   int
}

// Open returns the scripted reader.
func (m *MockSourceOpener) Open(format domain.Format, path string) (domain.IssueReader, error) {
	m.Opens++
	m.Format = format
	m.Path = path
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return m.Reader, nil
}

// Formats returns the formats of the default registry.
func (m *MockSourceOpener) Formats() []domain.Format {
	return []domain.Format{domain.FormatCSV, domain.FormatYAML}
}

// Records builds sequential records from issues, starting at row 1.
func Records(issues ...domain.Issue) []domain.Record {
	records := make([]domain.Record, len(issues))
	for i, issue := range issues {
		records[i] = domain.Record{Issue: issue, Row: i + 1, Line: i + 2}
	}
	return records
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr          error
	GlobalConfigInfo domain.ConfigInfo
	RepoConfigInfo   domain.ConfigInfo
	InitGlobalCalled bool
	InitRepoCalled   bool
	Forced           bool
}

// NewMockConfigManager creates a MockConfigManager with placeholder paths.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		GlobalConfigInfo: domain.ConfigInfo{Path: "/home/test/.config/gh-issues/config.toml"},
		RepoConfigInfo:   domain.ConfigInfo{Path: "/work/.gh-issues.toml"},
	}
}

// GetGlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// GetRepoConfigInfo returns the configured repository info.
func (m *MockConfigManager) GetRepoConfigInfo() domain.ConfigInfo {
	return m.RepoConfigInfo
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(force bool) error {
	m.InitGlobalCalled = true
	m.Forced = force
	return m.InitErr
}

// InitRepoConfig records the call.
func (m *MockConfigManager) InitRepoConfig(force bool) error {
	m.InitRepoCalled = true
	m.Forced = force
	return m.InitErr
}
