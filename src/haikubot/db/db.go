package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/jonbodner/proteus"
	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
)

//go:embed scripts/*.sql
var bootstrapScripts embed.FS

// Store is anything the DAOs can run against; both *sql.DB and *sql.Tx qualify.
type Store interface {
	proteus.ContextExecutor
	proteus.ContextQuerier
}

// Open opens the sqlite database at path and brings its schema up to date.
func Open(path string) (*sql.DB, error) {
	DB, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database %s: %w", path, err)
	}
	if err := BootstrapDB(DB); err != nil {
		DB.Close()
		return nil, fmt.Errorf("could not bootstrap database %s: %w", path, err)
	}
	return DB, nil
}

// BootstrapDB attempts to execute all embedded files ending in .sql against the provided database, in
// alphabetical order by filename. If no files are found, an error is returned.
func BootstrapDB(DB *sql.DB) error {
	foundSQLFile := false
	scripts, err := bootstrapScripts.ReadDir("scripts")
	if err != nil {
		return err
	}
	for _, finfo := range scripts {
		if finfo.IsDir() {
			continue
		}
		foundSQLFile = true

		script, err := bootstrapScripts.ReadFile("scripts/" + finfo.Name())
		if err != nil {
			return err
		}
		_, err = DB.Exec(string(script))
		if err != nil {
			log.Printf("could not execute bootstrap script %s: %v", finfo.Name(), err)
			return err
		}
		log.Debugf("executed bootstrap script %s", finfo.Name())
	}
	if !foundSQLFile {
		return fmt.Errorf("could not find any *.sql files in schema folder scripts")
	}
	return nil
}
