// Package database handles database connections and schema migration.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection to the database, configures
// the connection pool, and verifies the connection with a bounded ping. The
// returned handle is passed explicitly into features; there is no package
// level connection state.
//
// # Migrate
//
// Migrate applies the catalog schema (products, variants, digital assets,
// requests, quotes) via AutoMigrate. Ingestion relies on the child tables
// carrying cascade constraints declared on the models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	err = database.Migrate(db, &models.Product{}, &models.ProductVariant{})
package database
