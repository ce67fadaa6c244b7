package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// uploadBodyLimit caps multipart uploads at the transport before any
// buffering: slightly above the 5MB attachment policy to leave room
// for multipart framing, so oversized payloads are cut off during
// receipt instead of after.
const uploadBodyLimit = "6M"

func Register(
	e *echo.Echo,
	tasks *TaskHandler,
	auth *AuthHandler,
	audit *AuditHandler,
	authRequired echo.MiddlewareFunc,
) {
	e.POST("/auth/register", auth.Register)
	e.POST("/auth/login", auth.Login)

	taskGroup := e.Group("/tasks", authRequired)
	taskGroup.POST("", tasks.CreateTask)
	taskGroup.GET("", tasks.ListTasks)
	taskGroup.GET("/:id", tasks.GetTask)
	taskGroup.PUT("/:id", tasks.UpdateTask)
	taskGroup.PATCH("/:id", tasks.UpdateTask)
	taskGroup.DELETE("/:id", tasks.DeleteTask)
	taskGroup.POST("/:id/upload", tasks.UploadFile, middleware.BodyLimit(uploadBodyLimit))

	auditGroup := e.Group("/audit", authRequired)
	auditGroup.POST("", audit.Create)
	auditGroup.GET("", audit.List)
	auditGroup.GET("/:id", audit.Get)
	auditGroup.PATCH("/:id", audit.Update)
	auditGroup.DELETE("/:id", audit.Delete)
}
