package config

import (
	"log"
	"os"
)

// Store selects the persistence backend for catalog and ledger rows.
// "sqlite" keeps everything in the relational store; "file" keeps catalog and
// ledger rows in a single JSON data file (identity stays in sqlite either way).
type Config struct {
	Port     string
	DBDSN    string
	Store    string // sqlite | file
	DataFile string // used when Store == "file"
	LogFile  string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "inkledger.db"
	}
	store := os.Getenv("STORE")
	if store != "file" {
		store = "sqlite"
	}
	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "./inkledger-data.json"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./inkledger.log"
	}

	cfg := Config{Port: port, DBDSN: dsn, Store: store, DataFile: dataFile, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s STORE=%s DATA_FILE=%s LOG_FILE=%s",
		cfg.Port, cfg.DBDSN, cfg.Store, cfg.DataFile, cfg.LogFile)
	return cfg
}
