package db

import (
	"context"
	"time"

	"discord_rps/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
)

// Connect opens a pool and pings it.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, oops.In("db").Wrapf(err, "create database pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		db.Close()
		return nil, oops.In("db").Wrapf(err, "ping database")
	}

	logger.Info("database connected")
	return db, nil
}
