package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Zapvent Courts API",
        "description": "Court availability and reservation service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Courts", "description": "Court catalog"},
        {"name": "Availability", "description": "Bookable slots per court and date"},
        {"name": "Reservations", "description": "Booking and day sheets"}
    ],
    "paths": {
        "/courts": {
            "get": {
                "tags": ["Courts"],
                "summary": "List courts",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string", "enum": ["TENNIS", "FOOTBALL", "BASKETBALL", "PADEL", "VOLLEYBALL", "SQUASH"]},
                    {"name": "status", "in": "query", "type": "string", "enum": ["ACTIVE", "MAINTENANCE"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Courts"],
                "summary": "Register a court (ADMIN, EVENTS_OFFICE)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourtRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courts/{courtId}": {
            "get": {
                "tags": ["Courts"],
                "summary": "Get a court's configuration",
                "parameters": [
                    {"name": "courtId", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Court not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courts/{courtId}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "List a court's slots on a date",
                "parameters": [
                    {"name": "courtId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AvailabilityEnvelope"}},
                    "400": {"description": "Malformed id or date", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Court not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courts/{courtId}/reservations": {
            "post": {
                "tags": ["Reservations"],
                "summary": "Reserve a court slot (verified students)",
                "parameters": [
                    {"name": "courtId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReservationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ReservationEnvelope"}},
                    "400": {"description": "Malformed input, slot length mismatch, outside opening hours or misaligned slot", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Caller is not a verified student", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Court not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Court unavailable or slot already reserved", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Reservations"],
                "summary": "List reservations on a court day (ADMIN, EVENTS_OFFICE)",
                "parameters": [
                    {"name": "courtId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courts/{courtId}/reservations/export": {
            "get": {
                "tags": ["Reservations"],
                "summary": "Export a court day sheet (ADMIN, EVENTS_OFFICE)",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "courtId", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/reservations/me": {
            "get": {
                "tags": ["Reservations"],
                "summary": "List the caller's reservations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "OpeningWindow": {
            "type": "object",
            "properties": {
                "weekday": {"type": "integer", "minimum": 0, "maximum": 6, "description": "0 = Sunday"},
                "startTime": {"type": "string", "example": "09:00"},
                "endTime": {"type": "string", "example": "17:00"}
            },
            "required": ["weekday", "startTime", "endTime"]
        },
        "CourtException": {
            "type": "object",
            "properties": {
                "startDate": {"type": "string", "format": "date"},
                "endDate": {"type": "string", "format": "date"},
                "reason": {"type": "string"}
            },
            "required": ["startDate", "endDate"]
        },
        "CreateCourtRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["TENNIS", "FOOTBALL", "BASKETBALL", "PADEL", "VOLLEYBALL", "SQUASH"]},
                "venue": {"type": "string"},
                "timezone": {"type": "string", "example": "Africa/Cairo"},
                "surface": {"type": "string"},
                "indoor": {"type": "boolean"},
                "lights": {"type": "boolean"},
                "pricePerHour": {"type": "number"},
                "capacity": {"type": "integer"},
                "bookingSlotMinutes": {"type": "integer", "minimum": 5, "maximum": 480},
                "bufferMinutes": {"type": "integer", "minimum": 0, "maximum": 240},
                "status": {"type": "string", "enum": ["ACTIVE", "MAINTENANCE"]},
                "openingHours": {"type": "array", "items": {"$ref": "#/definitions/OpeningWindow"}},
                "exceptions": {"type": "array", "items": {"$ref": "#/definitions/CourtException"}}
            },
            "required": ["name", "type", "venue"]
        },
        "ReservationRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date", "example": "2024-12-16"},
                "startTime": {"type": "string", "example": "09:00"},
                "endTime": {"type": "string", "example": "10:00"}
            },
            "required": ["date", "startTime"]
        },
        "Slot": {
            "type": "object",
            "properties": {
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "isAvailable": {"type": "boolean"}
            }
        },
        "Availability": {
            "type": "object",
            "properties": {
                "courtId": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "timezone": {"type": "string"},
                "slots": {"type": "array", "items": {"$ref": "#/definitions/Slot"}},
                "reason": {"type": "string"}
            }
        },
        "Reservation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "courtId": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "studentName": {"type": "string"},
                "studentGucId": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "AvailabilityEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/Availability"}
            }
        },
        "ReservationEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object",
                    "properties": {
                        "reservation": {"$ref": "#/definitions/Reservation"}
                    }
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["INVALID_IDENTIFIER", "INVALID_FORMAT", "NOT_FOUND", "FORBIDDEN", "UNAUTHORIZED", "UNAVAILABLE", "INVALID_REQUEST", "CONFLICT", "INTERNAL"]},
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
