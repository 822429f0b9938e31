package bootstrap

import (
	"database/sql"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/board-runtime/webapi-backend/internal/api/http"
	"github.com/board-runtime/webapi-backend/internal/api/http/middleware"
	"github.com/board-runtime/webapi-backend/internal/reporting"
	tphttp "github.com/board-runtime/webapi-backend/internal/testprojects/http"
	"github.com/board-runtime/webapi-backend/internal/testprojects/repository"
)

type RouterDeps struct {
	ServiceName string
	DB          *sql.DB
	Logger      *zap.Logger
	Resolver    *reporting.BoardIDResolver
	Reporter    *reporting.Reporter
	EndpointURL string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:              []string{"Content-Type"},
		OptionsResponseStatusCode: http.StatusOK,
	}))
	r.Use(middleware.RequestID(dep.Logger))

	interceptor := reporting.NewInterceptor(dep.Logger, dep.Resolver, dep.Reporter, dep.EndpointURL)
	r.Use(interceptor.Middleware())

	infoHandler := httpapi.NewInfoHandler(dep.ServiceName)
	infoHandler.RegisterRoutes(r)

	swaggerHandler := httpapi.NewSwaggerHandler()
	swaggerHandler.RegisterRoutes(r)

	projectRepo := repository.New(dep.DB)
	tphttp.New(projectRepo).Register(r)

	// CORS preflight answers 200 on every path, even unrouted ones.
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusOK)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
