package core

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetHistoryLimit() int
}

type PersonaConfig interface {
	GetPersonaPath() string
	GetOwnerPersonaPath() string
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetOwnerID() int64
	GetOwnerName() string
}
