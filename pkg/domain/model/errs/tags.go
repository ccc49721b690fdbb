package errs

import "github.com/m-mizutani/goerr/v2"

var (
	// Client errors (4xx)
	TagNotFound     = goerr.NewTag("not_found")     // 404
	TagValidation   = goerr.NewTag("validation")    // 400
	TagUnauthorized = goerr.NewTag("unauthorized")  // 401
	TagForbidden    = goerr.NewTag("forbidden")     // 403
	TagConflict     = goerr.NewTag("conflict")      // 409

	// Server errors (5xx)
	TagInternal = goerr.NewTag("internal") // 500
	TagExternal = goerr.NewTag("external") // 502/503
	TagDatabase = goerr.NewTag("database") // 500 (specific to store errors)

	// Transport errors on the consuming side
	TagNetwork = goerr.NewTag("network") // request never reached the server
	TagServer  = goerr.NewTag("server")  // server answered non-2xx

	// Alert cache taxonomy
	TagFetchFailed    = goerr.NewTag("fetch_failed")    // initial population failed
	TagMutationFailed = goerr.NewTag("mutation_failed") // write op failed, state untouched
	TagChannelClosed  = goerr.NewTag("channel_closed")  // push channel is down

	// Business logic errors
	TagInvalidState = goerr.NewTag("invalid_state")
)
