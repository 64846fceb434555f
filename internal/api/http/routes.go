package httpapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/vfortin-ynov/weather-report-service/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		temp, ok := service.GetTemperature(c.Context(), city)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no weather data for requested city")
		}

		return c.JSON(fiber.Map{
			"city":        city,
			"temperature": temp,
		})
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		var req forecastQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		entries, ok := service.GetForecast(c.Context(), req.City, req.Days)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no forecast data for requested city")
		}

		return c.JSON(fiber.Map{
			"city":    req.City,
			"days":    req.Days,
			"entries": entries,
		})
	})

	v1.Get("/weather/good", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		good, ok := service.IsGoodWeather(c.Context(), city)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no weather data for requested city")
		}

		return c.JSON(fiber.Map{
			"city": city,
			"good": good,
		})
	})

	v1.Get("/weather/compare", func(c *fiber.Ctx) error {
		var q compareQuery
		q.City1 = c.Query("city1")
		q.City2 = c.Query("city2")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		message := service.CompareCities(c.Context(), q.City1, q.City2)
		if message == weather.CompareFailedMessage {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": message})
		}

		return c.JSON(fiber.Map{"message": message})
	})

	v1.Post("/reports", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		saved, err := service.SaveWeatherReport(c.Context(), city)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to write report log")
		}
		if !saved {
			return fiber.NewError(fiber.StatusNotFound, "no weather data for requested city")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"city":  city,
			"saved": true,
		})
	})

	v1.Get("/reports", func(c *fiber.Ctx) error {
		reports, err := service.Reports()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read report log")
		}
		if reports == nil {
			reports = []weather.WeatherReport{}
		}
		return c.JSON(reports)
	})
}

// cityQuery holds the query parameter identifying a city.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (string, error) {
	q := cityQuery{City: c.Query("city")}
	if err := validate.Struct(q); err != nil {
		return "", err
	}
	return q.City, nil
}

// forecastQuery holds query parameters for the forecast endpoint.
// The upstream free tier serves at most 40 buckets, hence the 1-5 range.
type forecastQuery struct {
	City string `validate:"required"`
	Days int    `validate:"min=1,max=5"`
}

func (f *forecastQuery) bind(c *fiber.Ctx) error {
	f.City = c.Query("city")

	f.Days = 5
	if daysStr := c.Query("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return err
		}
		f.Days = days
	}

	return validate.Struct(f)
}

// compareQuery holds query parameters for the comparison endpoint.
type compareQuery struct {
	City1 string `validate:"required"`
	City2 string `validate:"required"`
}
