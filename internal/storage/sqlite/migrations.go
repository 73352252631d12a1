package sqlite

import "database/sql"

// schema sets up the aggregate tables. All statements are idempotent and
// run on startup. AuthorId and ISBN on LibraryItems are nullable rather
// than empty strings; ReturnDate on LoanRecords is NULL while a loan is
// active. AuthorId is deliberately unconstrained: deletes must succeed on
// every backend, and a dangling author id degrades to a nil reference on
// load just like the CSV backend.
const schema = `
CREATE TABLE IF NOT EXISTS Authors (
    AuthorId TEXT PRIMARY KEY,
    Name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS Users (
    UserId TEXT PRIMARY KEY,
    Name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS LibraryItems (
    ItemId TEXT PRIMARY KEY,
    ItemType TEXT NOT NULL,
    Title TEXT NOT NULL,
    AuthorId TEXT,
    ISBN TEXT,
    PublicationYear INTEGER NOT NULL,
    AvailabilityStatus INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS LoanRecords (
    LoanRecordId TEXT PRIMARY KEY,
    ItemId TEXT NOT NULL,
    UserId TEXT NOT NULL,
    LoanDate TEXT NOT NULL,
    DueDate TEXT NOT NULL,
    ReturnDate TEXT
);

CREATE INDEX IF NOT EXISTS idx_loan_records_item_id ON LoanRecords(ItemId);
CREATE INDEX IF NOT EXISTS idx_loan_records_user_id ON LoanRecords(UserId);
CREATE INDEX IF NOT EXISTS idx_library_items_author_id ON LibraryItems(AuthorId);
`

// ensureSchema executes the schema setup.
func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
