package tracing

import (
	"database/sql"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"
)

// SQLiteTraceWriter stores samples in a SQLite database with two tables:
//
//	signals(name TEXT, width INTEGER)
//	samples(time INTEGER, signal TEXT, value INTEGER)
//
// SQLite integers are signed, so values are stored as the int64 with the same
// bits.
type SQLiteTraceWriter struct {
	*sql.DB
	statement *sql.Stmt

	dbName    string
	samples   []Sample
	batchSize int
	closed    bool
}

// NewSQLiteTraceWriter creates a writer for the database at path. An empty
// path selects a unique file name in the working directory.
func NewSQLiteTraceWriter(path string) *SQLiteTraceWriter {
	return &SQLiteTraceWriter{
		dbName:    path,
		batchSize: 100000,
	}
}

// Path returns the database file.
func (t *SQLiteTraceWriter) Path() string {
	return t.dbName
}

// Init creates the database and its tables.
func (t *SQLiteTraceWriter) Init(signals []Signal) error {
	if t.dbName == "" {
		t.dbName = "memverif_trace_" + xid.New().String() + ".sqlite3"
	}

	if _, err := os.Stat(t.dbName); err == nil {
		return errors.Errorf("file %s already exists", t.dbName)
	}

	db, err := sql.Open("sqlite3", t.dbName)
	if err != nil {
		return errors.Wrap(err, "opening SQLite trace")
	}
	t.DB = db

	for _, q := range []string{
		`CREATE TABLE signals (name TEXT PRIMARY KEY, width INTEGER)`,
		`CREATE TABLE samples (time INTEGER, signal TEXT, value INTEGER)`,
		`CREATE INDEX samples_time ON samples (time)`,
	} {
		if _, err := t.Exec(q); err != nil {
			return errors.Wrapf(err, "executing %q", q)
		}
	}

	for _, s := range signals {
		_, err := t.Exec(`INSERT INTO signals VALUES (?, ?)`, s.Name, s.Width)
		if err != nil {
			return errors.Wrap(err, "recording signals")
		}
	}

	t.statement, err = t.Prepare(`INSERT INTO samples VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing sample insertion")
	}

	atexit.Register(func() {
		if err := t.Close(); err != nil {
			log.Warnf("closing SQLite trace: %v", err)
		}
	})

	return nil
}

// Write buffers a sample.
func (t *SQLiteTraceWriter) Write(sample Sample) {
	t.samples = append(t.samples, sample)
	if len(t.samples) >= t.batchSize {
		t.Flush()
	}
}

// Flush writes all the buffered samples in one transaction. Samples that
// cannot be stored are dropped with a warning.
func (t *SQLiteTraceWriter) Flush() {
	if t.closed || len(t.samples) == 0 {
		return
	}

	samples := t.samples
	t.samples = nil

	tx, err := t.Begin()
	if err != nil {
		log.Warnf("dropping %d trace samples: %v", len(samples), err)
		return
	}

	stmt := tx.Stmt(t.statement)
	for _, s := range samples {
		_, err := stmt.Exec(int64(s.Time), s.Signal, int64(s.Value))
		if err != nil {
			log.Warnf("dropping %d trace samples: recording %+v: %v",
				len(samples), s, err)

			if err := tx.Rollback(); err != nil {
				log.Warnf("rolling back trace samples: %v", err)
			}

			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Warnf("dropping %d trace samples: %v", len(samples), err)
	}
}

// Close flushes and closes the database. Closing twice is harmless.
func (t *SQLiteTraceWriter) Close() error {
	if t.closed || t.DB == nil {
		return nil
	}

	t.Flush()
	t.closed = true

	if t.statement != nil {
		if err := t.statement.Close(); err != nil {
			log.Warnf("closing trace statement: %v", err)
		}
	}

	return t.DB.Close()
}
