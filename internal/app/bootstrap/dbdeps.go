// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/youthportal/internal/app/system/statuswatch"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Hub fans out account status changes. It is a *statuswatch.RedisHub
	// when redis_addr is set, otherwise a *statuswatch.LocalHub.
	Hub statuswatch.Hub

	// stoppers collects background workers started while building the
	// handler so Shutdown can stop them.
	stoppers *stoppers
}
