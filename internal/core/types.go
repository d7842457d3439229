package core

import "time"

const (
	SayaName        = "Saya"
	SayaServiceName = "Saya Memory Database"
	SayaVersion     = "1.0"
	SayaDescription = "حافظه هوشمند سایا"
	SayaUserAgent   = "Saya-Bot/1.0"
	SayaRepoURL     = "https://github.com/sandevgo/saya"
)

// UserProfile is the latest known display name of a chat user.
type UserProfile struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

// MemoryEntry is one stored exchange between a user and the bot.
// Entries are append-only.
type MemoryEntry struct {
	UserID    int64     `json:"user_id"`
	Text      string    `json:"memory"`
	Timestamp time.Time `json:"timestamp"`
}

type Stats struct {
	TotalMemories int `json:"total_memories"`
	TotalUsers    int `json:"total_users"`
}

// Backup is a raw dump of every stored row.
type Backup struct {
	BackupTime time.Time     `json:"backup_time"`
	Memories   []MemoryEntry `json:"memories"`
	Names      []UserProfile `json:"names"`
}
