// Package configs holds the default runtime files shipped inside the binary.
package configs

import "embed"

//go:embed PERSONA.md OWNER.md
var FS embed.FS
