package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	Postgres *gorm.DB
	MongoDB  *mongo.Database
	log      *zap.Logger
}

// NewDatabase connects PostgreSQL (required) and MongoDB (optional: a failed
// connection is logged and MongoDB is left nil).
func NewDatabase(ctx context.Context, postgresURL, mongoURL, mongoDBName string, log *zap.Logger) (*Database, error) {
	postgresDB, err := OpenPostgres(postgresURL, false)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	log.Info("connected to PostgreSQL")

	mongoDB, err := OpenMongo(ctx, mongoURL, mongoDBName)
	if err != nil {
		log.Warn("MongoDB connection failed, catalog mirror, chat history and inbox are disabled", zap.Error(err))
		mongoDB = nil
	} else {
		log.Info("connected to MongoDB", zap.String("db", mongoDBName))
	}

	return &Database{
		Postgres: postgresDB,
		MongoDB:  mongoDB,
		log:      log,
	}, nil
}

// OpenPostgres opens a pooled gorm connection and pings it.
func OpenPostgres(url string, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	config := &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}

	db, err := gorm.Open(postgres.Open(url), config)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func OpenMongo(ctx context.Context, url, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client.Database(dbName), nil
}

// Migrate creates or updates tables for models. gen_random_uuid needs
// pgcrypto on PostgreSQL older than 13.
func (db *Database) Migrate(models ...interface{}) error {
	if err := db.Postgres.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		db.log.Warn("could not ensure pgcrypto extension", zap.Error(err))
	}
	return db.Postgres.AutoMigrate(models...)
}

func (db *Database) PingPostgres(ctx context.Context) error {
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *Database) PingMongo(ctx context.Context) error {
	return db.MongoDB.Client().Ping(ctx, nil)
}

func (db *Database) Close() error {
	if sqlDB, err := db.Postgres.DB(); err == nil {
		sqlDB.Close()
	}

	if db.MongoDB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return db.MongoDB.Client().Disconnect(ctx)
	}

	return nil
}
