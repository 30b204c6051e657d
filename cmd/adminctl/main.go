package main

import (
	"github.com/joho/godotenv"

	"github.com/oksasatya/catalog-backoffice/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
