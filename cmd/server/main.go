package main

import (
	"os"

	"threadline/backend/internal/app"
)

func main() {
	os.Exit(app.Run())
}
