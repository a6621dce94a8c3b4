package svr

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sevenkilo/tracker-backend/internal/app/appconfig"
	"github.com/sevenkilo/tracker-backend/internal/pkg/middlewares"
)

// Meta holds the unversioned routes: index, health, metadata.
type Meta struct {
	fiber.Router
}

type V1 struct {
	fiber.Router
}

type Admin struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App, conf *appconfig.Config) (*Meta, *V1, *Admin) {
	meta := app.Group("")
	v1 := app.Group("/api/v1")
	admin := app.Group("/api/_/admin", middlewares.AdminKeyAuth(conf))

	return &Meta{Router: meta}, &V1{Router: v1}, &Admin{Router: admin}
}
