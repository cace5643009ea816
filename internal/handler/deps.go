package handler

import (
	"msgrelay/internal/app/relay"
	"msgrelay/internal/configs"
)

// AppDeps bundles the dependencies shared by the HTTP handlers.
type AppDeps struct {
	Registry *relay.Registry
	Config   *configs.AppConfig
}
