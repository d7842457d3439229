package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sandevgo/saya/internal/core"
)

// Store is the persistent store: memories and display names in one file.
type Store struct {
	*MemoriesRepo
	*UsersRepo
	now func() time.Time
}

var _ core.MemoryRepository = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{
		MemoriesRepo: NewMemoriesRepo(db),
		UsersRepo:    NewUsersRepo(db),
		now:          time.Now,
	}
}

// DumpAll reads both tables. The two reads are not a snapshot.
func (s *Store) DumpAll(ctx context.Context) (*core.Backup, error) {
	memories, err := s.MemoriesRepo.listAll(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.UsersRepo.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return &core.Backup{
		BackupTime: s.now(),
		Memories:   memories,
		Names:      names,
	}, nil
}
