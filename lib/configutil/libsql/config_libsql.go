package configlibsql

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"

	devenv "headlinewatch/dev/env"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Struct struct {
	File  string `json:"file"`
	Url   string `json:"url"`
	Token string `json:"token"`
}

func openRemote(remote, token string) (*sql.DB, error) {
	u, err := url.Parse(remote)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if token != "" {
		q := u.Query()
		q.Set("authToken", token)
		u.RawQuery = q.Encode()
	}
	return sql.Open("libsql", u.String())
}

func (config Struct) OpenDB() (*sql.DB, error) {
	if config.Url != "" {
		return openRemote(config.Url, config.Token)
	}
	if config.File == "" {
		return nil, fmt.Errorf("a database path was not specified")
	}

	dbpath, err := devenv.ResolvePath(config.File)
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(dbpath)
	if os.IsNotExist(statErr) {
		f, err := os.Create(dbpath)
		if err != nil {
			return nil, err
		}
		f.Close()
	}

	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	return db, nil
}
