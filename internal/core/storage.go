package core

import "context"

// MemoryRepository is the persistent store shared by the chat path and the status API.
type MemoryRepository interface {
	SaveMemory(ctx context.Context, userID int64, text string) error
	GetMemories(ctx context.Context, userID int64, limit int) ([]string, error)
	SaveUserName(ctx context.Context, userID int64, name string) error
	GetUserName(ctx context.Context, userID int64) (string, error)
	StatsRepository
}

type StatsRepository interface {
	CountMemories(ctx context.Context) (int, error)
	CountUsers(ctx context.Context) (int, error)
	DumpAll(ctx context.Context) (*Backup, error)
}
