package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the Swagger UI page and the OpenAPI document.
// - GET /swagger/index.html  -> HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>volunteer-server Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": {
    "title": "volunteer-server",
    "version": "v1.0.0"
  },
  "paths": {
    "/jwt": {
      "post": {
        "summary": "Issue the session cookie for an identity payload",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": [
                  "email"
                ],
                "properties": {
                  "email": {
                    "type": "string"
                  }
                }
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "cookie set"
          },
          "400": {
            "description": "email missing"
          }
        }
      }
    },
    "/logout": {
      "get": {
        "summary": "Clear the session cookie and revoke the token",
        "responses": {
          "200": {
            "description": "cookie cleared"
          }
        }
      }
    },
    "/volunteer": {
      "get": {
        "summary": "List opportunities, latest deadline first",
        "responses": {
          "200": {
            "description": "opportunities"
          }
        }
      }
    },
    "/volunteer/{id}": {
      "get": {
        "summary": "Get an opportunity",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "opportunity or null"
          },
          "400": {
            "description": "invalid id"
          }
        }
      }
    },
    "/update/{id}": {
      "get": {
        "summary": "Get an opportunity for editing",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "opportunity or null"
          }
        }
      },
      "put": {
        "summary": "Upsert an opportunity",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "update result"
          },
          "400": {
            "description": "invalid id or empty body"
          }
        }
      }
    },
    "/volunteers/{email}": {
      "get": {
        "summary": "List opportunities owned by the caller (cookie required)",
        "parameters": [
          {
            "name": "email",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "opportunities"
          },
          "401": {
            "description": "unauthorized access"
          },
          "403": {
            "description": "forbidden access"
          }
        }
      }
    },
    "/volunteers/{id}": {
      "delete": {
        "summary": "Delete an opportunity",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "delete result"
          }
        }
      }
    },
    "/volunteerpost": {
      "post": {
        "summary": "Create an opportunity",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": [
                  "title",
                  "category",
                  "deadline",
                  "ownerEmail"
                ]
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "insert result"
          },
          "400": {
            "description": "invalid document"
          }
        }
      }
    },
    "/beavollunteer": {
      "post": {
        "summary": "Apply to an opportunity",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": [
                  "applicantEmail"
                ]
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "insert result"
          }
        }
      }
    },
    "/be-a-volunteer/{email}": {
      "get": {
        "summary": "List applications made by the caller (cookie required)",
        "parameters": [
          {
            "name": "email",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "applications"
          },
          "401": {
            "description": "unauthorized access"
          },
          "403": {
            "description": "forbidden access"
          }
        }
      }
    },
    "/req-volunteer/{id}": {
      "delete": {
        "summary": "Cancel an application",
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "delete result"
          }
        }
      }
    },
    "/applied-post": {
      "get": {
        "summary": "Search the caller's applications by exact-match fields (cookie required)",
        "responses": {
          "200": {
            "description": "applications"
          },
          "400": {
            "description": "invalid query"
          }
        }
      }
    },
    "/all-volunteer": {
      "get": {
        "summary": "Paginated opportunity search",
        "parameters": [
          {
            "name": "page",
            "in": "query",
            "schema": {
              "type": "integer"
            }
          },
          {
            "name": "size",
            "in": "query",
            "schema": {
              "type": "integer"
            }
          },
          {
            "name": "search",
            "in": "query",
            "schema": {
              "type": "string"
            }
          },
          {
            "name": "filter",
            "in": "query",
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "page of opportunities"
          }
        }
      }
    },
    "/volunteer-count": {
      "get": {
        "summary": "Count opportunities matching search and filter",
        "parameters": [
          {
            "name": "search",
            "in": "query",
            "schema": {
              "type": "string"
            }
          },
          {
            "name": "filter",
            "in": "query",
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "{count}"
          }
        }
      }
    },
    "/health": {
      "get": {
        "summary": "Liveness",
        "responses": {
          "200": {
            "description": "ok"
          }
        }
      }
    },
    "/ready": {
      "get": {
        "summary": "Readiness of store and cache",
        "responses": {
          "200": {
            "description": "ready"
          },
          "503": {
            "description": "dependency down"
          }
        }
      }
    }
  }
}`
