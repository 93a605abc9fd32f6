package db

import "embed"

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var Migrations embed.FS

//go:embed seed/*.json
var SeedFiles embed.FS
