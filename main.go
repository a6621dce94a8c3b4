package main

import (
	"github.com/sevenkilo/tracker-backend/cmd/app"
)

// @title          Production Tracker API
// @version        1.0.0
// @description    Backend for the 7kilo Production Tracker: production run ingestion,
// @description    OEE reporting, trend charts and host maintenance (health probe, DB backups).
// @BasePath       /api
func main() {
	app.Run()
}
