package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mhb8436/aria/pkg/engine"
	"github.com/mhb8436/aria/pkg/logger"
)

// ErrNotFound is returned by lookups for ids that were never stored
var ErrNotFound = errors.New("not found")

// Scan is the listing row of a stored scan
type Scan struct {
	ID             int64   `json:"id"`
	URL            string  `json:"url"`
	Timestamp      string  `json:"timestamp"`
	Duration       int64   `json:"duration"`
	ComplianceRate float64 `json:"complianceRate"`
	ViolationCount int     `json:"violationCount"`
	PassCount      int     `json:"passCount"`
}

// Violation is one stored violation row. NodesJSON holds the raw node list.
type Violation struct {
	ID          int64  `json:"id"`
	ScanID      int64  `json:"scanId"`
	KwcagID     string `json:"kwcagId"`
	KwcagName   string `json:"kwcagName"`
	Severity    string `json:"severity"`
	RuleID      string `json:"ruleId"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	NodeCount   int    `json:"nodeCount"`
	NodesJSON   string `json:"nodesJson"`
}

// Nodes decodes the stored node list
func (v Violation) Nodes() ([]engine.Node, error) {
	var nodes []engine.Node
	if err := json.Unmarshal([]byte(v.NodesJSON), &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Store persists scan and crawl results in a SQLite database
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. ":memory:" is accepted.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &engine.PersistenceError{Op: "open", Err: err}
	}
	// A single connection keeps ":memory:" databases and pragmas consistent
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA journal_mode = WAL", "PRAGMA foreign_keys = ON", schema} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, &engine.PersistenceError{Op: "migrate", Err: err}
		}
	}
	logger.Debugf("opened result store %s", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveScanResult stores a scan and its violations in one transaction and
// returns the scan id
func (s *Store) SaveScanResult(r *engine.ScanResult) (int64, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return 0, &engine.PersistenceError{Op: "save scan", Err: err}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, &engine.PersistenceError{Op: "save scan", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO scans (url, timestamp, duration, compliance_rate, violation_count, pass_count, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.URL, r.Timestamp.Format(time.RFC3339Nano), r.Duration, r.Summary.ComplianceRate,
		len(r.Violations), r.Summary.PassCount, string(raw))
	if err != nil {
		return 0, &engine.PersistenceError{Op: "save scan", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &engine.PersistenceError{Op: "save scan", Err: err}
	}

	stmt, err := tx.Prepare(`INSERT INTO violations (scan_id, kwcag_id, kwcag_name, severity, rule_id, description, impact, node_count, nodes_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, &engine.PersistenceError{Op: "save violations", Err: err}
	}
	defer stmt.Close()

	for _, v := range r.Violations {
		nodes, err := json.Marshal(v.Nodes)
		if err != nil {
			return 0, &engine.PersistenceError{Op: "save violations", Err: err}
		}
		if _, err := stmt.Exec(id, v.KwcagID, v.KwcagName, string(v.Severity), v.RuleID,
			v.Description, v.Impact, len(v.Nodes), string(nodes)); err != nil {
			return 0, &engine.PersistenceError{Op: "save violations", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &engine.PersistenceError{Op: "save scan", Err: err}
	}
	return id, nil
}

// SaveCrawlResult stores a crawl and returns its id
func (s *Store) SaveCrawlResult(r *engine.CrawlResult) (int64, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return 0, &engine.PersistenceError{Op: "save crawl", Err: err}
	}
	res, err := s.db.Exec(`INSERT INTO crawls (start_url, timestamp, duration, pages_scanned, total_violations, unique_kwcag_violations, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.StartURL, time.Now().UTC().Format(time.RFC3339Nano), r.Duration, r.PagesScanned,
		r.Summary.TotalViolations, r.Summary.UniqueKwcagViolations, string(raw))
	if err != nil {
		return 0, &engine.PersistenceError{Op: "save crawl", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &engine.PersistenceError{Op: "save crawl", Err: err}
	}
	return id, nil
}

// Scans lists the most recent scans, newest first
func (s *Store) Scans(limit int) ([]Scan, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT id, url, timestamp, duration, compliance_rate, violation_count, pass_count
		FROM scans ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, &engine.PersistenceError{Op: "list scans", Err: err}
	}
	defer rows.Close()

	var out []Scan
	for rows.Next() {
		var sc Scan
		if err := rows.Scan(&sc.ID, &sc.URL, &sc.Timestamp, &sc.Duration, &sc.ComplianceRate, &sc.ViolationCount, &sc.PassCount); err != nil {
			return nil, &engine.PersistenceError{Op: "list scans", Err: err}
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, &engine.PersistenceError{Op: "list scans", Err: err}
	}
	return out, nil
}

// ScanByID loads a stored scan result
func (s *Store) ScanByID(id int64) (*engine.ScanResult, error) {
	var r engine.ScanResult
	if err := s.loadJSON("load scan", `SELECT result_json FROM scans WHERE id = ?`, id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CrawlByID loads a stored crawl result
func (s *Store) CrawlByID(id int64) (*engine.CrawlResult, error) {
	var r engine.CrawlResult
	if err := s.loadJSON("load crawl", `SELECT result_json FROM crawls WHERE id = ?`, id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// LatestScanID returns the id of the newest scan
func (s *Store) LatestScanID() (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM scans ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &engine.PersistenceError{Op: "latest scan", Err: ErrNotFound}
	}
	if err != nil {
		return 0, &engine.PersistenceError{Op: "latest scan", Err: err}
	}
	return id, nil
}

// ViolationsByScan lists the violations of one scan ordered by item id
func (s *Store) ViolationsByScan(scanID int64) ([]Violation, error) {
	return s.violations("violations by scan", `WHERE scan_id = ? ORDER BY kwcag_id`, scanID)
}

// ViolationsByKwcag lists every stored violation of one item, newest scan first
func (s *Store) ViolationsByKwcag(kwcagID string) ([]Violation, error) {
	return s.violations("violations by item", `WHERE kwcag_id = ? ORDER BY scan_id DESC`, kwcagID)
}

func (s *Store) violations(op, where string, arg interface{}) ([]Violation, error) {
	rows, err := s.db.Query(`SELECT id, scan_id, kwcag_id, kwcag_name, severity, rule_id, description, impact, node_count, nodes_json
		FROM violations `+where, arg)
	if err != nil {
		return nil, &engine.PersistenceError{Op: op, Err: err}
	}
	defer rows.Close()

	var out []Violation
	for rows.Next() {
		var v Violation
		if err := rows.Scan(&v.ID, &v.ScanID, &v.KwcagID, &v.KwcagName, &v.Severity, &v.RuleID,
			&v.Description, &v.Impact, &v.NodeCount, &v.NodesJSON); err != nil {
			return nil, &engine.PersistenceError{Op: op, Err: err}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &engine.PersistenceError{Op: op, Err: err}
	}
	return out, nil
}

func (s *Store) loadJSON(op, query string, id int64, out interface{}) error {
	var raw string
	err := s.db.QueryRow(query, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return &engine.PersistenceError{Op: op, Err: fmt.Errorf("id %d: %w", id, ErrNotFound)}
	}
	if err != nil {
		return &engine.PersistenceError{Op: op, Err: err}
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &engine.PersistenceError{Op: op, Err: err}
	}
	return nil
}
