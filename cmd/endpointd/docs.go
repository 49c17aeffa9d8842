package main

// General API documentation for swaggo. Run `swag init -g cmd/endpointd/docs.go` to generate docs.
//
// @title           endpointd API
// @version         1.0
// @description     HTTP API for model endpoint deployment, invocation, and teardown.
//
// @contact.name   endpointd maintainers
// @contact.url    https://github.com/your-org/endpointd
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
