package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Charge is one generated BR Code, kept so admins can list and re-serve
// codes they already handed out.
type Charge struct {
	TxID         string `json:"txid"`
	Key          string `json:"key"`
	KeyKind      string `json:"key_kind"`
	Amount       string `json:"amount,omitempty"`
	Description  string `json:"description,omitempty"`
	MerchantName string `json:"merchant_name"`
	Payload      string `json:"payload"`
	CreatedAt    int64  `json:"created_at"`
}

// ChargeLog manages SQLite storage for generated charges.
type ChargeLog struct {
	db *sql.DB
}

const createChargesTable = `
CREATE TABLE IF NOT EXISTS charges (
    txid TEXT PRIMARY KEY,
    key TEXT NOT NULL,
    key_kind TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    merchant_name TEXT NOT NULL DEFAULT '',
    payload TEXT NOT NULL,
    created_at INTEGER NOT NULL
);
`

const createFTSTable = `
CREATE VIRTUAL TABLE IF NOT EXISTS charges_fts USING fts5(
    description,
    merchant_name,
    content='charges',
    content_rowid='rowid'
);
`

const createFTSTrigger = `
CREATE TRIGGER IF NOT EXISTS charges_ai AFTER INSERT ON charges BEGIN
    INSERT INTO charges_fts(rowid, description, merchant_name)
    VALUES (new.rowid, new.description, new.merchant_name);
END;
`

const createIndexes = `
CREATE INDEX IF NOT EXISTS idx_charges_created_at ON charges(created_at);
`

// NewChargeLog opens (or creates) the SQLite database at dbPath,
// initialises the schema (charges table, FTS5 virtual table, sync
// trigger), and returns a ready-to-use ChargeLog.
func NewChargeLog(dbPath string) (*ChargeLog, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run schema migrations.
	for _, stmt := range []string{
		createChargesTable,
		createFTSTable,
		createFTSTrigger,
		createIndexes,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec schema statement: %w", err)
		}
	}

	return &ChargeLog{db: db}, nil
}

// SaveCharge inserts a charge into the database. If a charge with the
// same txid already exists the insert is silently ignored (deduplication).
func (s *ChargeLog) SaveCharge(c *Charge) error {
	const query = `
		INSERT OR IGNORE INTO charges
			(txid, key, key_kind, amount, description, merchant_name, payload, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		c.TxID,
		c.Key,
		c.KeyKind,
		c.Amount,
		c.Description,
		c.MerchantName,
		c.Payload,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save charge: %w", err)
	}
	return nil
}

// GetCharge returns the charge with the given txid, or sql.ErrNoRows
// wrapped when it does not exist.
func (s *ChargeLog) GetCharge(txid string) (*Charge, error) {
	const query = `
		SELECT txid, key, key_kind, amount, description, merchant_name, payload, created_at
		FROM charges
		WHERE txid = ?
	`

	var c Charge
	err := s.db.QueryRow(query, txid).Scan(
		&c.TxID, &c.Key, &c.KeyKind, &c.Amount,
		&c.Description, &c.MerchantName, &c.Payload, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get charge %s: %w", txid, err)
	}
	return &c, nil
}

// ListCharges returns charges ordered by creation time descending (newest
// first). Use limit and offset for pagination.
func (s *ChargeLog) ListCharges(limit, offset int) ([]Charge, error) {
	const query = `
		SELECT txid, key, key_kind, amount, description, merchant_name, payload, created_at
		FROM charges
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}
	defer rows.Close()

	return scanCharges(rows)
}

// SearchCharges performs a full-text search across charge descriptions
// and merchant names using the FTS5 index. Results are ranked by
// relevance.
func (s *ChargeLog) SearchCharges(query string, limit int) ([]Charge, error) {
	// Escape any double quotes in the query to avoid FTS5 syntax errors.
	escaped := strings.ReplaceAll(query, `"`, `""`)
	ftsQuery := fmt.Sprintf(`"%s"`, escaped)

	const q = `
		SELECT c.txid, c.key, c.key_kind, c.amount, c.description, c.merchant_name,
		       c.payload, c.created_at
		FROM charges c
		JOIN charges_fts fts ON c.rowid = fts.rowid
		WHERE charges_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`

	rows, err := s.db.Query(q, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("search charges: %w", err)
	}
	defer rows.Close()

	return scanCharges(rows)
}

// Close closes the underlying database connection.
func (s *ChargeLog) Close() error {
	return s.db.Close()
}

func scanCharges(rows *sql.Rows) ([]Charge, error) {
	var charges []Charge
	for rows.Next() {
		var c Charge
		if err := rows.Scan(
			&c.TxID, &c.Key, &c.KeyKind, &c.Amount,
			&c.Description, &c.MerchantName, &c.Payload, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan charge row: %w", err)
		}
		charges = append(charges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate charge rows: %w", err)
	}
	return charges, nil
}
