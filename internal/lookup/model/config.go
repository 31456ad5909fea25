package model

import "time"

// ================ Config ================
type SourceConfig struct {
	URL          string        `envconfig:"CSV_SOURCE_URL" default:"https://docs.google.com/spreadsheets/d/e/2PACX-1vQUkZZSIVv2DdmP22Okp_GEjqGaKU6IikB9oiL4oZF2x9VYHqXMo48if_Du6VM67SE2MF-8YRfW-YP2/pub?gid=677583262&single=true&output=csv"`
	RelayURL     string        `envconfig:"CSV_RELAY_URL"`
	RelayParam   string        `envconfig:"CSV_RELAY_PARAM" default:"url"`
	Delimiter    string        `envconfig:"CSV_DELIMITER" default:","`
	FetchTimeout time.Duration `envconfig:"CSV_FETCH_TIMEOUT" default:"0s"`
}

type FieldConfig struct {
	Code        string `envconfig:"FIELD_CODE" default:"CODIGO_BARRAS"`
	Name        string `envconfig:"FIELD_NAME" default:"NOMBRE"`
	Price       string `envconfig:"FIELD_PRICE" default:"PRECIO"`
	Description string `envconfig:"FIELD_DESCRIPTION" default:"DESCRIPCION"`
	Image       string `envconfig:"FIELD_IMAGE" default:"IMAGEN_URL"`
}

// DefaultFields matches the column names of the published product sheet.
var DefaultFields = FieldConfig{
	Code:        "CODIGO_BARRAS",
	Name:        "NOMBRE",
	Price:       "PRECIO",
	Description: "DESCRIPCION",
	Image:       "IMAGEN_URL",
}

type DisplayConfig struct {
	Currency         string `envconfig:"DISPLAY_CURRENCY" default:"$"`
	PlaceholderImage string `envconfig:"DISPLAY_PLACEHOLDER_IMAGE"`
	// Language of feedback messages: "en" or "es".
	Language         string `envconfig:"DISPLAY_LANGUAGE" default:"en"`
}

type ServerConfig struct {
	Port            string        `envconfig:"HTTP_PORT" default:"8080"`
	QueueSize       int           `envconfig:"QUEUE_SIZE" default:"64"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"5s"`
}
