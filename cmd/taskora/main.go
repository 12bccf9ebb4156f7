package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"taskoraClient/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	cfg := config.LoadConfig()

	flag.Parse()
	args := flag.Args()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	app, err := initializeApp(cfg, infoLog, errorLog)
	if err != nil {
		errorLog.Fatal(err)
	}
	defer app.Close()

	if len(args) == 0 {
		app.usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if err := app.run(ctx, args[0], args[1:]); err != nil {
		errorLog.Fatal(err)
	}
}
