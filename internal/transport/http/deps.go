package http

import (
	"github.com/employee-api/internal/infrastructure/dynamo"
	"github.com/employee-api/internal/infrastructure/sns"
	"go.uber.org/zap"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	EmployeeRepo *dynamo.EmployeeRepo
	// Publisher is nil when eventing is disabled; writes then complete
	// without emitting change events.
	Publisher sns.Publisher
	Logger    *zap.Logger
}
