package main

import (
	"github.com/joho/godotenv"

	"github.com/thomas11/blogcal/internal/cli"
)

func main() {
	// Load .env if present so NODE_ENV and BLOGCAL_* can live next to the site.
	_ = godotenv.Load()

	cli.Execute()
}
