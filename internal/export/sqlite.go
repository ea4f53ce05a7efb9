package export

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"

	_ "modernc.org/sqlite" // database/sql driver "sqlite"

	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/dataset"
	"github.com/agentstation/repurpose/pkg/errors"
)

const schema = `
CREATE TABLE meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE drugs (
	id       TEXT PRIMARY KEY,
	position INTEGER NOT NULL
);
CREATE TABLE diseases (
	id       TEXT PRIMARY KEY,
	position INTEGER NOT NULL
);
CREATE TABLE genes (
	symbol   TEXT PRIMARY KEY,
	position INTEGER NOT NULL
);
CREATE TABLE associations (
	drug    TEXT NOT NULL REFERENCES drugs(id),
	disease TEXT NOT NULL REFERENCES diseases(id),
	value   INTEGER NOT NULL,
	PRIMARY KEY (drug, disease)
);
CREATE INDEX associations_disease ON associations(disease);
`

const featureSchema = `
CREATE TABLE drug_features (
	gene  TEXT NOT NULL REFERENCES genes(symbol),
	drug  TEXT NOT NULL REFERENCES drugs(id),
	value REAL,
	PRIMARY KEY (gene, drug)
);
CREATE TABLE disease_features (
	gene    TEXT NOT NULL REFERENCES genes(symbol),
	disease TEXT NOT NULL REFERENCES diseases(id),
	value   REAL,
	PRIMARY KEY (gene, disease)
);
`

// OpenSQLite opens a SQLite database with the pragmas every export uses.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		path, constants.SQLiteBusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapIO("open", path, err)
	}
	return db, nil
}

// SQLite writes the release to a new SQLite database at path, replacing
// any existing file. Everything is written in a single transaction.
// Releases with repeated labels cannot be exported.
func SQLite(ctx context.Context, ds *dataset.Dataset, path string, opts ...Option) (*Summary, error) {
	ctx, o := newOptions(ctx, "sqlite", opts)

	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return nil, errors.WrapIO("remove", p, err)
		}
	}

	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.WrapIO("begin", path, err)
	}
	defer func() { _ = tx.Rollback() }()

	w := &sqliteWriter{ctx: ctx, tx: tx}
	summary := &Summary{Path: path, Format: "sqlite"}

	w.exec(schema)
	if o.features {
		w.exec(featureSchema)
	}

	m := ds.Manifest
	w.insert("INSERT INTO meta(key, value) VALUES (?, ?)", func(stmt *sql.Stmt) {
		for _, kv := range [][2]string{
			{"name", m.Name},
			{"version", m.Version},
			{"description", m.Description},
			{"source", ds.Source},
			{"ratings_file", ds.Associations.Name},
			{"items_file", ds.DrugFeatures.Name},
			{"users_file", ds.DiseaseFeatures.Name},
		} {
			w.row(stmt, kv[0], kv[1])
		}
	})

	summary.Drugs = w.labels("INSERT INTO drugs(id, position) VALUES (?, ?)", ds.Drugs())
	summary.Diseases = w.labels("INSERT INTO diseases(id, position) VALUES (?, ?)", ds.Diseases())
	summary.Genes = w.labels("INSERT INTO genes(symbol, position) VALUES (?, ?)", ds.Genes())

	w.insert("INSERT INTO associations(drug, disease, value) VALUES (?, ?, ?)", func(stmt *sql.Stmt) {
		for _, a := range ds.Triplets(!o.unknowns) {
			w.row(stmt, a.Drug, a.Disease, a.Value)
			summary.Associations++
		}
	})

	if o.features {
		summary.FeatureValues += w.features("INSERT INTO drug_features(gene, drug, value) VALUES (?, ?, ?)", ds.DrugFeatures)
		summary.FeatureValues += w.features("INSERT INTO disease_features(gene, disease, value) VALUES (?, ?, ?)", ds.DiseaseFeatures)
	}

	if w.err != nil {
		return nil, errors.WrapResource("export", "sqlite", path, w.err)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.WrapIO("commit", path, err)
	}

	o.logger.Debug().
		Str("path", path).
		Int("associations", summary.Associations).
		Int("feature_values", summary.FeatureValues).
		Msg("sqlite export written")
	return summary, nil
}

// sqliteWriter carries the first error across a sequence of statements.
type sqliteWriter struct {
	ctx context.Context
	tx  *sql.Tx
	err error
	n   int
}

func (w *sqliteWriter) exec(query string) {
	if w.err != nil {
		return
	}
	_, w.err = w.tx.ExecContext(w.ctx, query)
}

func (w *sqliteWriter) insert(query string, fill func(*sql.Stmt)) {
	if w.err != nil {
		return
	}
	stmt, err := w.tx.PrepareContext(w.ctx, query)
	if err != nil {
		w.err = err
		return
	}
	defer func() { _ = stmt.Close() }()
	fill(stmt)
}

func (w *sqliteWriter) row(stmt *sql.Stmt, args ...any) {
	if w.err != nil {
		return
	}
	w.n++
	if w.n%constants.CancelCheckRows == 0 {
		if err := w.ctx.Err(); err != nil {
			w.err = errors.WrapCanceled("sqlite export", err)
			return
		}
	}
	_, w.err = stmt.ExecContext(w.ctx, args...)
}

func (w *sqliteWriter) labels(query string, ids []string) int {
	w.insert(query, func(stmt *sql.Stmt) {
		for i, id := range ids {
			w.row(stmt, id, i)
		}
	})
	return len(ids)
}

// features writes a gene x entity matrix in long form; missing values become NULL.
func (w *sqliteWriter) features(query string, m *dataset.FeatureMatrix) int {
	n := 0
	w.insert(query, func(stmt *sql.Stmt) {
		for r, gene := range m.RowIDs {
			for c, v := range m.Row(r) {
				var value sql.NullFloat64
				if !math.IsNaN(v) {
					value = sql.NullFloat64{Float64: v, Valid: true}
				}
				w.row(stmt, gene, m.ColIDs[c], value)
				n++
			}
		}
	})
	return n
}
