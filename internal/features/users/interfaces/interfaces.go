package users_interfaces

import "github.com/google/uuid"

// AuditLogWriter breaks the import cycle between the users services and the
// audit log feature; DI wires the concrete service in at startup.
type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID)
}
