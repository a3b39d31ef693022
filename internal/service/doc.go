// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Key components:
//
// 1. Service Interfaces:
//   - Define application-specific operations available to the delivery
//     mechanisms (HTTP handlers, MCP tools)
//
// 2. Use Case Implementations:
//   - Validate input against domain rules before touching the store
//   - Stamp timestamps from an injectable clock
//   - Publish domain events after every committed change
//
// 3. Error Handling:
//   - Expected conditions pass through for errors.Is checks
//   - Unexpected failures are wrapped in ServiceError
//
// The service layer depends on domain entities and repository interfaces (from store),
// but never on specific infrastructure implementations.
package service
