// Package api exposes the task service over HTTP. It decodes request bodies
// into change sets, maps service and store errors to status codes and safe
// messages, and renders tasks in their external JSON shape.
package api
