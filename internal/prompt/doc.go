// Package prompt reads operator input line by line and turns it into typed
// field values.
//
// Every read can be interrupted. An interrupt asks the operator to confirm
// the exit; "Y" ends the session with ErrExit, anything else resumes the
// pending read. Field readers retry until the input parses.
package prompt
