package postgres

var MigrateURL = migrateURL

var PoolConfig = poolConfig

var MigrationsFS = migrationsFS
