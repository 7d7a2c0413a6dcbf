// Package environment names the deployment stage and carries it through
// request contexts.
//
// Parse accepts the common aliases ("prod", "stage", "test", "dev") so the
// APP_ENV variable can be written either way. The stage drives logger
// defaults and whether debug endpoints are mounted.
package environment
