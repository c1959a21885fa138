package database

import (
	"fmt"
	"time"

	"github.com/fadilmartias/ielts-scorer/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the PostgreSQL pool and sizes it for env.
func Connect(dbConfig *config.DBConfig, appConfig *config.AppConfig) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if !appConfig.IsProduction() {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("could not get database instance: %w", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}
	if err := pgDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	zap.L().Info("connected to postgres",
		zap.String("host", dbConfig.Host),
		zap.String("database", dbConfig.Name))
	return db, nil
}
