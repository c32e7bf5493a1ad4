// Package docs tiene la descripción OpenAPI 2.0 que sirve /swagger/*.
// Se mantiene a mano junto con las anotaciones de los handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/analysis": {
            "post": {
                "description": "Calcula estadísticas y series de gráficos del período para una enfermedad y, si hay registros, pide el análisis narrativo IA. Un fallo IA no corta la respuesta: queda en ` + "`" + `ai.status=error` + "`" + `.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Análisis de síntomas",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "Bearer token en producción", "name": "Authorization", "in": "header"},
                    {"description": "Enfermedad y período (1month, 3months o custom con start/end)", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/analysis.analysisRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "select a disease / fechas inválidas", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "disease not found", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/api/analyze": {
            "post": {
                "description": "Recibe síntomas y datos de la enfermedad, arma el prompt y devuelve el texto del modelo. Sin sesión; CORS abierto.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analysis"],
                "summary": "Proxy de análisis IA",
                "parameters": [
                    {"description": "Síntomas, enfermedad y paciente", "name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "symptoms required", "schema": {"type": "object"}},
                    "405": {"description": "method not allowed", "schema": {"type": "object"}},
                    "500": {"description": "error del modelo", "schema": {"type": "object"}}
                }
            }
        },
        "/auth/signin": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {"description": "Email y contraseña", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.signInRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/accounts.sessionResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "401": {"description": "invalid credentials", "schema": {"type": "string"}},
                    "503": {"description": "identity provider not configured", "schema": {"type": "string"}}
                }
            }
        },
        "/auth/signout": {
            "post": {
                "tags": ["auth"],
                "summary": "Cerrar sesión",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Crear cuenta",
                "parameters": [
                    {"description": "Email, contraseña y confirmación", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.signUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/accounts.sessionResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "409": {"description": "email already registered", "schema": {"type": "string"}},
                    "503": {"description": "identity provider not configured", "schema": {"type": "string"}}
                }
            }
        },
        "/diseases": {
            "get": {
                "produces": ["application/json"],
                "tags": ["diseases"],
                "summary": "Listar mis enfermedades",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/diseases.diseaseResponse"}}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["diseases"],
                "summary": "Registrar enfermedad",
                "parameters": [
                    {"description": "Nombre y medicación", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/diseases.diseaseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/diseases.diseaseResponse"}},
                    "400": {"description": "name is required", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/diseases/{diseaseID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["diseases"],
                "summary": "Ver enfermedad",
                "parameters": [{"type": "string", "description": "Disease ID", "name": "diseaseID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/diseases.diseaseResponse"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["diseases"],
                "summary": "Editar enfermedad",
                "parameters": [
                    {"type": "string", "description": "Disease ID", "name": "diseaseID", "in": "path", "required": true},
                    {"description": "Nombre y medicación", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/diseases.diseaseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/diseases.diseaseResponse"}},
                    "400": {"description": "name is required", "schema": {"type": "string"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["diseases"],
                "summary": "Borrar enfermedad",
                "parameters": [{"type": "string", "description": "Disease ID", "name": "diseaseID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            }
        },
        "/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Usuario actual",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.userResponse"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/me/profile": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Completar perfil",
                "parameters": [
                    {"description": "Fecha de nacimiento y género", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.profileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.userResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/symptoms": {
            "get": {
                "description": "Tres modos según query: ` + "`" + `date` + "`" + ` (panel del día), ` + "`" + `year` + "`" + `+` + "`" + `month` + "`" + ` (calendario con marcadores por enfermedad) o ` + "`" + `start` + "`" + `+` + "`" + `end` + "`" + ` (+` + "`" + `disease_id` + "`" + ` opcional, orden por fecha desc).",
                "produces": ["application/json"],
                "tags": ["symptoms"],
                "summary": "Listar registros",
                "parameters": [
                    {"type": "string", "description": "Día YYYY-MM-DD", "name": "date", "in": "query"},
                    {"type": "integer", "description": "Año (vista mensual)", "name": "year", "in": "query"},
                    {"type": "integer", "description": "Mes 1-12 (vista mensual)", "name": "month", "in": "query"},
                    {"type": "string", "description": "Inicio YYYY-MM-DD", "name": "start", "in": "query"},
                    {"type": "string", "description": "Fin YYYY-MM-DD", "name": "end", "in": "query"},
                    {"type": "string", "description": "Filtrar por enfermedad", "name": "disease_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/symptoms.recordResponse"}}},
                    "400": {"description": "invalid query", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["symptoms"],
                "summary": "Registrar síntoma",
                "parameters": [
                    {"description": "Registro del día", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/symptoms.createRecordRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/symptoms.recordResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "disease not found", "schema": {"type": "string"}}
                }
            }
        },
        "/symptoms/{recordID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["symptoms"],
                "summary": "Ver registro",
                "parameters": [{"type": "string", "description": "Record ID", "name": "recordID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/symptoms.recordResponse"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["symptoms"],
                "summary": "Editar registro",
                "parameters": [
                    {"type": "string", "description": "Record ID", "name": "recordID", "in": "path", "required": true},
                    {"description": "Campos editables", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/symptoms.updateRecordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/symptoms.recordResponse"}},
                    "400": {"description": "invalid input", "schema": {"type": "string"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "tags": ["symptoms"],
                "summary": "Borrar registro",
                "parameters": [{"type": "string", "description": "Record ID", "name": "recordID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "forbidden", "schema": {"type": "string"}},
                    "404": {"description": "not found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "accounts.sessionResponse": {
            "type": "object",
            "properties": {
                "expires_at": {"type": "string"},
                "token": {"type": "string"},
                "user": {"type": "object"}
            }
        },
        "accounts.signInRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "accounts.signUpRequest": {
            "type": "object",
            "properties": {
                "confirm_password": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "analysis.analysisRequest": {
            "type": "object",
            "properties": {
                "disease_id": {"type": "string"},
                "end": {"type": "string"},
                "period": {"type": "string", "enum": ["1month", "3months", "custom"]},
                "start": {"type": "string"}
            }
        },
        "diseases.diseaseRequest": {
            "type": "object",
            "properties": {
                "medication": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "diseases.diseaseResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "medication": {"type": "string"},
                "name": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "symptoms.createRecordRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "details": {"type": "string"},
                "disease_id": {"type": "string"},
                "medication_taken": {"type": "boolean"},
                "pain_level": {"type": "integer"},
                "time": {"type": "string"}
            }
        },
        "symptoms.recordResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "date": {"type": "string"},
                "details": {"type": "string"},
                "disease_id": {"type": "string"},
                "id": {"type": "string"},
                "medication_taken": {"type": "boolean"},
                "pain_level": {"type": "integer"},
                "time": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "symptoms.updateRecordRequest": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "disease_id": {"type": "string"},
                "medication_taken": {"type": "boolean"},
                "pain_level": {"type": "integer"},
                "time": {"type": "string"}
            }
        },
        "users.profileRequest": {
            "type": "object",
            "properties": {
                "birthdate": {"type": "string"},
                "gender": {"type": "string", "enum": ["male", "female", "unspecified"]}
            }
        },
        "users.userResponse": {
            "type": "object",
            "properties": {
                "age": {"type": "integer"},
                "birthdate": {"type": "string"},
                "email": {"type": "string"},
                "gender": {"type": "string"},
                "id": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo se registra en swag; http-swagger lo lee como doc.json.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Symptom Tracker API",
	Description:      "Registro diario de síntomas por enfermedad, calendario mensual y análisis con IA.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
