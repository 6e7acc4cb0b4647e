// Package router wraps julienschmidt/httprouter with the application
// middleware stack (panic recovery, client IP, correlation id, tracing and
// request logging, maintenance switch, bearer authentication) and the JSON
// response envelope shared by every module.
package router
