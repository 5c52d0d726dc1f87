package store

const schema = `
CREATE TABLE IF NOT EXISTS scans (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  url TEXT NOT NULL,
  timestamp TEXT NOT NULL,
  duration INTEGER NOT NULL,
  compliance_rate REAL NOT NULL,
  violation_count INTEGER NOT NULL,
  pass_count INTEGER NOT NULL,
  result_json TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS violations (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  scan_id INTEGER NOT NULL REFERENCES scans(id),
  kwcag_id TEXT NOT NULL,
  kwcag_name TEXT NOT NULL,
  severity TEXT NOT NULL,
  rule_id TEXT NOT NULL,
  description TEXT NOT NULL,
  impact TEXT NOT NULL,
  node_count INTEGER NOT NULL,
  nodes_json TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS crawls (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  start_url TEXT NOT NULL,
  timestamp TEXT NOT NULL,
  duration INTEGER NOT NULL,
  pages_scanned INTEGER NOT NULL,
  total_violations INTEGER NOT NULL,
  unique_kwcag_violations INTEGER NOT NULL,
  result_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_violations_scan ON violations(scan_id);
CREATE INDEX IF NOT EXISTS idx_violations_kwcag ON violations(kwcag_id);
CREATE INDEX IF NOT EXISTS idx_scans_url ON scans(url);
`
