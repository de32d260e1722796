// Package logger provee logging estructurado con zap para todo el servicio.
//
// Uso típico:
//
//	logger.Init(logger.Config{Env: "prod", Level: "info", ServiceName: "cvision"})
//	defer logger.Sync()
//
// En handlers/services, preferir el logger del contexto (inyectado por el
// middleware de logging):
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Login"))
//	log.Info("login successful", logger.UserID(user.ID))
package logger
