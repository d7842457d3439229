package config

import "os"

func IsDebug() bool {
	return os.Getenv("SAYA_DEBUG") == "1"
}
