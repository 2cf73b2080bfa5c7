package router

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"diarium/internal/errors"
	"diarium/internal/handler"
	"diarium/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	guard *middleware.AccessGuard,
	authHandler *handler.AuthHandler,
	diaryHandler *handler.DiaryHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = HTTPErrorHandler

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Diary service is running",
			"status":  "SUCCESS",
		})
	})

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes: token verification, then account resolution.
	secured := api.Group("", guard.Authenticate(), guard.ResolveUser)

	secured.GET("/auth/me", authHandler.Me)

	secured.GET("/diary", diaryHandler.List)
	secured.POST("/diary", diaryHandler.Create)
	secured.GET("/diary/:id", diaryHandler.Get)
	secured.PUT("/diary/:id", diaryHandler.Update)
	secured.DELETE("/diary/:id", diaryHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// HTTPErrorHandler renders every error as the uniform success-flag JSON
// body. Domain errors are mapped centrally; anything unrecognized
// becomes a generic 500 with no internal detail exposed.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var status int
	var message string

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		message = fmt.Sprintf("%v", he.Message)
		if he == echo.ErrNotFound {
			message = "Route not found: " + c.Request().URL.Path
		}
	} else {
		httpErr := errors.MapErrorToHTTP(err)
		status = httpErr.StatusCode
		message = httpErr.Message
	}

	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, errors.ErrorResponse{Success: false, Message: message})
}
