// Package service contains the task API's use cases. It sits between the HTTP
// handlers and the store interfaces, turning partial change sets into
// validated domain.Task values and running updates inside a transaction.
//
// Services receive their store through constructor injection and translate
// store errors into service-level sentinels (ErrTaskNotFound) or wrap them in
// TaskServiceError. Validation errors pass through untouched so the API layer
// can report field messages.
package service
