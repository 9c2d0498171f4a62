package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/tripsearch/pkg/api/routes"
)

func NewApp(search *routes.Search) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/search")

	group.Get("/version", routes.APIVersion)

	routes.SearchRouter(group, search)

	return webApp
}

func SetupServer(listen string, search *routes.Search) error {
	return NewApp(search).Listen(listen)
}
