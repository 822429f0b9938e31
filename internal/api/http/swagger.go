package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const swaggerPage = `<!DOCTYPE html>
<html>
<head>
    <title>Backend API - Swagger UI</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css" />
    <style>
        html { box-sizing: border-box; overflow: -moz-scrollbars-vertical; overflow-y: scroll; }
        *, *:before, *:after { box-sizing: inherit; }
        body { margin:0; background: #fafafa; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-standalone-preset.js"></script>
    <script>
        window.onload = function() {
            const ui = SwaggerUIBundle({
                url: "/swagger.json",
                dom_id: "#swagger-ui",
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                plugins: [
                    SwaggerUIBundle.plugins.DownloadUrl
                ],
                layout: "StandaloneLayout"
            });
        };
    </script>
</body>
</html>
`

// SwaggerHandler serves the static interactive docs and the OpenAPI
// document for the test project CRUD surface.
type SwaggerHandler struct{}

func NewSwaggerHandler() *SwaggerHandler {
	return &SwaggerHandler{}
}

func (h *SwaggerHandler) UI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerPage))
}

func (h *SwaggerHandler) Spec(c *gin.Context) {
	projectSchema := gin.H{"$ref": "#/components/schemas/TestProjects"}
	inputSchema := gin.H{"$ref": "#/components/schemas/TestProjectsInput"}
	idParam := gin.H{
		"name":     "id",
		"in":       "path",
		"required": true,
		"schema":   gin.H{"type": "integer"},
	}

	c.JSON(http.StatusOK, gin.H{
		"openapi": "3.0.0",
		"info": gin.H{
			"title":       "Backend API",
			"version":     "1.0.0",
			"description": "Backend API Documentation",
		},
		"paths": gin.H{
			"/api/test": gin.H{
				"get": gin.H{
					"summary": "Get all test projects",
					"responses": gin.H{
						"200": gin.H{
							"description": "List of test projects",
							"content": gin.H{
								"application/json": gin.H{
									"schema": gin.H{"type": "array", "items": projectSchema},
								},
							},
						},
					},
				},
				"post": gin.H{
					"summary": "Create a new test project",
					"requestBody": gin.H{
						"required": true,
						"content":  gin.H{"application/json": gin.H{"schema": inputSchema}},
					},
					"responses": gin.H{
						"201": gin.H{
							"description": "Created test project",
							"content":     gin.H{"application/json": gin.H{"schema": projectSchema}},
						},
					},
				},
			},
			"/api/test/{id}": gin.H{
				"get": gin.H{
					"summary":    "Get test project by ID",
					"parameters": []gin.H{idParam},
					"responses": gin.H{
						"200": gin.H{
							"description": "Test project found",
							"content":     gin.H{"application/json": gin.H{"schema": projectSchema}},
						},
						"404": gin.H{"description": "Project not found"},
					},
				},
				"put": gin.H{
					"summary":    "Update test project",
					"parameters": []gin.H{idParam},
					"requestBody": gin.H{
						"required": true,
						"content":  gin.H{"application/json": gin.H{"schema": inputSchema}},
					},
					"responses": gin.H{
						"200": gin.H{"description": "Updated test project"},
						"404": gin.H{"description": "Project not found"},
					},
				},
				"delete": gin.H{
					"summary":    "Delete test project",
					"parameters": []gin.H{idParam},
					"responses": gin.H{
						"200": gin.H{"description": "Deleted successfully"},
						"404": gin.H{"description": "Project not found"},
					},
				},
			},
		},
		"components": gin.H{
			"schemas": gin.H{
				"TestProjects": gin.H{
					"type": "object",
					"properties": gin.H{
						"Id":   gin.H{"type": "integer"},
						"Name": gin.H{"type": "string"},
					},
				},
				"TestProjectsInput": gin.H{
					"type":       "object",
					"required":   []string{"Name"},
					"properties": gin.H{"Name": gin.H{"type": "string"}},
				},
			},
		},
	})
}

func (h *SwaggerHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/swagger", h.UI)
	r.GET("/swagger.json", h.Spec)
}
