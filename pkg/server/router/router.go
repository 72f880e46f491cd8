package router

import "github.com/gofiber/fiber/v2"

// ServerRouter mounts one group of routes onto an app.
type ServerRouter interface {
	BuildRoutes(app *fiber.App) error
}
