package store

import (
	"context"
	"log"

	"badge-verifier/internal/config"
	"badge-verifier/internal/db"
)

// Open builds the primary store for cfg.Backend. A database that cannot be reached
// at startup is logged and replaced by the file store; the choice is then fixed
// for the life of the process.
func Open(ctx context.Context, cfg config.AppConfig, files *FileStore) Store {
	primary, err := openDatabase(ctx, cfg)
	if err != nil {
		log.Printf("%s backend unavailable, using file store %s: %v", cfg.Backend, cfg.JSONFile, err)
		return files
	}
	if primary == nil {
		return files
	}
	log.Printf("using %s backend", primary.Name())
	return primary
}

func openDatabase(ctx context.Context, cfg config.AppConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s, err := NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil
	case config.BackendMongo:
		client, err := db.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return NewMongoStore(client, cfg.MongoDatabase), nil
	case config.BackendSQLite:
		conn, err := db.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s, err := NewSQLiteStore(conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return s, nil
	}
	return nil, nil
}
