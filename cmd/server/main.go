package main

import (
	"log"

	"github.com/joho/godotenv"

	"vitadoc/internal/app"
)

// @title           VitaDoc API
// @version         1.0
// @description     Doctor registration, authentication and password reset.
// @BasePath        /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, relying on environment")
	}
	app.Run()
}
