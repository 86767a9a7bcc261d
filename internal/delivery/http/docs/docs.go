// Package docs embeds the API description served under /api/docs.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPI []byte

//go:embed swagger.html
var SwaggerUI []byte
