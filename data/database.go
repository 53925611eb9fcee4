package data

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Драйвер SQLite, импортируется для побочных эффектов (регистрации драйвера)
	"github.com/rs/zerolog/log"
)

const memoryDSN = ":memory:"

// resolveDbPath определяет путь к файлу БД.
// Относительный путь считается от текущей рабочей директории.
func resolveDbPath(path string) (string, error) {
	if path == memoryDSN || filepath.IsAbs(path) {
		return path, nil
	}
	currentWorkDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return filepath.Join(currentWorkDir, path), nil
}

// OpenDB открывает базу SQLite и применяет схему хранилища ключ-значение.
func OpenDB(path string) (*sqlx.DB, error) {
	dataSourceName, err := resolveDbPath(path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", dataSourceName).Msg("Using database file")

	db, err := sqlx.Connect("sqlite3", dataSourceName+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	// SQLite допускает одного писателя; для :memory: одно соединение - это еще и одна база.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err = db.Exec(GetKeyValueSchema()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to execute key-value schema: %w", err)
	}
	log.Info().Msg("Key-value schema applied successfully.")
	return db, nil
}
