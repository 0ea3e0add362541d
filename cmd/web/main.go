package main

import "psfinder_backend/internal/app"

func main() {
	app.Run()
}
