// Package events provides types and interfaces for an event-driven architecture.
//
// Services emit a TaskEvent after every change to the task collection without
// knowing which handlers will process it. Handlers such as the metrics
// collector subscribe through an EventEmitter.
//
// The primary components are:
// - TaskEvent: Describes a single change to the task collection
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
