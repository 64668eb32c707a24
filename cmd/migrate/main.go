package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"catalogo/config"
	"catalogo/internal/pkg/database"
	"catalogo/internal/pkg/logger"
)

// gooseLogger adapta o logger da aplicação à interface goose.Logger.
type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(fmt.Sprintf(format, v...), nil)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Fatal(fmt.Sprintf(format, v...), nil)
}

func main() {
	log := logger.NewLogger(os.Getenv("LOG_LEVEL"))

	if err := godotenv.Load(); err != nil {
		log.Warn("Arquivo .env não encontrado. Usando apenas o ambiente do sistema.", nil)
	}

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./sql", "diretório com os arquivos de migração")
	flag.Parse()

	dsn, err := config.DatabaseURL()
	if err != nil {
		log.Fatal("Configuração inválida.", err)
	}

	db, err := database.NewPostgresDB(dsn)
	if err != nil {
		log.Fatal("goose: falha ao conectar ao DB.", err)
	}
	defer db.Close()

	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("goose: dialeto inválido.", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"} // 'up' quando nenhum comando é informado
	}

	command := arguments[0]
	if err := goose.RunContext(context.Background(), command, db, migrationsDir, arguments[1:]...); err != nil {
		log.Fatal(fmt.Sprintf("goose %s falhou.", command), err)
	}

	log.Info("goose concluído.", map[string]interface{}{"command": command})
}
