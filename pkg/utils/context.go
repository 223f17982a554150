package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// Ctx навешивает дедлайн на контекст запроса. Используется контроллерами
// перед каждым обращением к сервисному слою.
func Ctx(c echo.Context, timeout time.Duration) context.Context {
	newCtx, cancel := context.WithTimeout(c.Request().Context(), timeout)

	go func() {
		<-newCtx.Done()
		cancel()
	}()

	return newCtx
}
