// ABOUTME: SQLite database schema for memory and token storage
// ABOUTME: Creates all tables and indexes for local storage
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Memory records with their embedding vectors
CREATE TABLE IF NOT EXISTS memories (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    memory_type TEXT NOT NULL,
    content TEXT NOT NULL,
    importance REAL NOT NULL DEFAULT 1.0,
    embedding BLOB NOT NULL,
    embedding_model TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

-- Nearest-neighbor candidates are always scoped to one owner and one model
CREATE INDEX IF NOT EXISTS idx_memories_owner_model
    ON memories(owner_id, embedding_model);

-- API tokens mapping bearer credentials to owners
CREATE TABLE IF NOT EXISTS api_tokens (
    token TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_api_tokens_owner ON api_tokens(owner_id);
`

// migrate applies the schema to the database
func (db *DB) migrate() error {
	_, err := db.conn.Exec(Schema)
	return err
}
