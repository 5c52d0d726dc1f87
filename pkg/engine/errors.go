package engine

import "fmt"

// ConfigurationError reports a bad flag, config value or URL
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NavigationError reports a page that could not be loaded
type NavigationError struct {
	URL     string
	Timeout bool
	Err     error
}

func (e *NavigationError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("navigation to %s timed out: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to navigate to %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// EngineInjectionError reports that the DOM rule engine could not be loaded or run
type EngineInjectionError struct {
	URL   string
	Stage string // load, inject, run
	Err   error
}

func (e *EngineInjectionError) Error() string {
	return fmt.Sprintf("rule engine %s failed on %s: %v", e.Stage, e.URL, e.Err)
}

func (e *EngineInjectionError) Unwrap() error { return e.Err }

// RuleExecutionError reports one custom rule that failed
type RuleExecutionError struct {
	RuleID string
	ItemID string
	Err    error
}

func (e *RuleExecutionError) Error() string {
	return fmt.Sprintf("rule %s (%s) failed: %v", e.RuleID, e.ItemID, e.Err)
}

func (e *RuleExecutionError) Unwrap() error { return e.Err }

// PersistenceError reports a storage failure
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// RenderError reports a report that could not be written
type RenderError struct {
	Format string
	Path   string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render %s report %s: %v", e.Format, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
