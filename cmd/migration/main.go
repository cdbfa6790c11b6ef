package main

import (
	"bufio"
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/peoplehub/internal/config"
	"gitlab.com/dirk.krummacker/peoplehub/internal/persist"
)

// Usage example on the command line:
// > DBHOST=localhost DBUSER=dirk DBPWD=bullo92 go run main.go -file=../../scripts/database.sql
func main() {
	filePtr := flag.String("file", "database.sql", "the sql file to execute")
	flag.Parse()

	cfg, err := config.Load(".env")
	if err != nil {
		panic(err)
	}
	var db *sqlx.DB
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		db, err = sqlx.Open("mysql", persist.MySQLDSN(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBName))
	case config.DriverSQLite:
		db, err = sqlx.Open("sqlite", cfg.SQLitePath)
	default:
		slog.Info("nothing to migrate", "driver", cfg.StoreDriver)
		return
	}
	if err != nil {
		panic(err)
	}
	defer db.Close()

	readFile, err := os.Open(*filePtr) // nosemgrep
	if err != nil {
		panic(err)
	}
	defer readFile.Close()

	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	statements := 0
	for fileScanner.Scan() {
		line := fileScanner.Text()
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			db.MustExec(builder.String())
			builder = strings.Builder{}
			statements++
		}
	}
	slog.Info("migration done", "driver", cfg.StoreDriver, "file", *filePtr, "statements", statements)
}
