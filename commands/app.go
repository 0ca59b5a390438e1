package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/blog-api/config"
	"github.com/rpupo63/blog-api/database"
	"github.com/rpupo63/blog-api/hateoas"
	"github.com/rpupo63/blog-api/search"
	"github.com/rpupo63/blog-api/services"
	"github.com/rs/zerolog/log"
)

const (
	backendPostgres = "postgres"
	backendBadger   = "badger"
)

// application holds the wired services shared by serve and reindex.
type application struct {
	db      database.Database
	blogs   *services.BlogService
	posts   *services.PostService
	backend string
	closers []func() error
}

func openDatabase(c map[string]string) (database.Database, error) {
	gormDB, err := database.Open(database.OpenOptions{
		DSN:           config.DatabaseDSN(c),
		SlowThreshold: time.Duration(config.GetInt(c, "DB_SLOW_THRESHOLD_MS", 10000)) * time.Millisecond,
		Logger:        log.With().Str("component", "gorm").Logger(),
	})
	if err != nil {
		return database.Database{}, err
	}
	return database.New(gormDB), nil
}

func searchBackend(c map[string]string) string {
	return strings.ToLower(strings.TrimSpace(config.GetString(c, "SEARCH_BACKEND", backendPostgres)))
}

func newApplication(c map[string]string, db database.Database) (*application, error) {
	app := &application{db: db, backend: searchBackend(c)}

	// indexer stays an untyped nil for the postgres backend, which keeps its own index
	var (
		searcher search.Searcher
		indexer  search.Indexer
	)
	switch app.backend {
	case backendPostgres:
		searcher = search.NewPostgresSearcher(db.DB())
	case backendBadger:
		index, err := search.OpenBadgerIndex(
			config.GetString(c, "SEARCH_INDEX_PATH", ""),
			log.With().Str("component", "badger").Logger(),
		)
		if err != nil {
			return nil, fmt.Errorf("open search index: %w", err)
		}
		app.closers = append(app.closers, index.Close)
		searcher, indexer = index, index
	default:
		return nil, fmt.Errorf("unknown SEARCH_BACKEND %q, expected %s or %s", app.backend, backendPostgres, backendBadger)
	}

	assembler := hateoas.NewAssembler(config.GetString(c, "PUBLIC_BASE_URL", ""))
	app.blogs = services.NewBlogService(db.BlogRepo(), db.PostRepo(), assembler)
	app.posts = services.NewPostService(db.PostRepo(), db.BlogRepo(), searcher, indexer, assembler)
	return app, nil
}

func (a *application) Close() error {
	var errList []error
	for _, closer := range a.closers {
		errList = append(errList, closer())
	}
	if sqlDB, err := a.db.DB().DB(); err == nil {
		errList = append(errList, sqlDB.Close())
	}
	return errors.Join(errList...)
}
