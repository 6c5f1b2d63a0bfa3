// Package repository handles all interactions with PostgreSQL and Redis.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Empty results are returned as pgx.ErrNoRows annotated with
// sqlerr.WithTable so the HTTP layer can name the missing entity.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/raceboard/backend/internal/server"
)

// DBTX is the query surface shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Users           *UserRepository
	DriverDocuments *DriverDocumentRepository
	DriverRecords   *DriverRecordRepository
	LocationConfigs *LocationConfigRepository
	Classifiers     *ClassifierRepository
	Events          *EventRepository
	Sessions        *SessionStore
	Codes           *CodeStore
}

// NewRepositories wires every repository to the server's pool and Redis client.
func NewRepositories(s *server.Server) *Repositories {
	return newRepositories(s.DB.Pool, s.Redis)
}

func newRepositories(db DBTX, rdb redis.Cmdable) *Repositories {
	return &Repositories{
		Users:           NewUserRepository(db),
		DriverDocuments: NewDriverDocumentRepository(db),
		DriverRecords:   NewDriverRecordRepository(db),
		LocationConfigs: NewLocationConfigRepository(db),
		Classifiers:     NewClassifierRepository(db),
		Events:          NewEventRepository(db),
		Sessions:        NewSessionStore(rdb),
		Codes:           NewCodeStore(rdb),
	}
}
