package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable Engine API",
        "description": "Weekly school timetable generation, validation and sorting over a boolean constraint solver",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "paths": {
        "/schedule": {
            "post": {
                "summary": "Generate a weekly timetable",
                "responses": {
                    "200": {
                        "description": "Solver outcome with timetable and statistics"
                    }
                }
            }
        },
        "/validate": {
            "post": {
                "summary": "Check a timetable for resource conflicts",
                "responses": {
                    "200": {
                        "description": "Validation result"
                    }
                }
            }
        },
        "/optimize": {
            "post": {
                "summary": "Sort a timetable into canonical day/period order",
                "responses": {
                    "200": {
                        "description": "Sorted timetable"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
