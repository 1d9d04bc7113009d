// cmd/exoparam/main.go
package main

import (
	"exoparam/internal/app"
	"exoparam/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
