package routes

import "github.com/gofiber/fiber/v2"

const Version = "v0.2"

func APIVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": Version,
	})
}
