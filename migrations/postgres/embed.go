// Package postgres embebe las migraciones SQL para poder aplicarlas
// desde el binario del servicio (flags.migrate) sin depender del
// directorio en disco.
package postgres

import "embed"

//go:embed *.sql
var FS embed.FS

// UpSuffix y DownSuffix identifican la dirección de cada archivo.
const (
	UpSuffix   = "_up.sql"
	DownSuffix = "_down.sql"
)
