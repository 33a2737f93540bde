package seeder_test

import (
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/seed"
	"github.com/heartmarshall/focloireacht-backend/internal/app/seeder"
)

// Compile-time check: *seed.Repo must satisfy BulkRepo.
var _ seeder.BulkRepo = (*seed.Repo)(nil)
