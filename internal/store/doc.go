// Package store defines the persistence contract for tasks. The contract
// abstracts the backing collection from the service layer so business rules
// stay independent of how tasks are held.
package store
