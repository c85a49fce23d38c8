package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/service"
)

// NewRouter assembles middleware and all endpoints.
func NewRouter(
	log *logrus.Logger,
	store *db.Postgres,
	tokens *service.TokenService,
	auth *AuthHandler,
	users *UserHandler,
	tasks *TaskHandler,
	allowedOrigins string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(CORSMiddleware(strings.Split(allowedOrigins, ","), true))

	r.GET("/", Root)
	r.GET("/health", Health(store))
	r.GET("/openapi.json", OpenAPIDoc)

	api := r.Group("/api")

	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.POST("/auth/refresh", auth.Refresh)

	authorized := api.Group("/")
	authorized.Use(AuthMiddleware(tokens))
	{
		authorized.GET("/users", users.List)
		authorized.POST("/users", users.Create)
		authorized.GET("/users/:id", users.Get)
		authorized.PUT("/users/:id", users.Update)
		authorized.DELETE("/users/:id", users.Delete)

		authorized.GET("/tasks", tasks.List)
		authorized.POST("/tasks", tasks.Create)
		authorized.PUT("/tasks/:id", tasks.Update)
		authorized.DELETE("/tasks/:id", tasks.Delete)
	}

	return r
}
