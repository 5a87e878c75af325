// Package types defines shared types used across the habit codebase.
package types

import "time"

// StatusStub marks an invocation whose command has no handler yet.
const StatusStub = "stub"

// ParsedArgs is the parsed-arguments record echoed by stub commands.
// Flags holds only the global flags the user set explicitly.
type ParsedArgs struct {
	Cmd   string            `json:"cmd" yaml:"cmd"`
	Flags map[string]string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// Invocation is a single dispatched command, as recorded in the journal.
type Invocation struct {
	ID        string            `json:"id" yaml:"id"`
	Cmd       string            `json:"cmd" yaml:"cmd"`
	Flags     map[string]string `json:"flags,omitempty" yaml:"flags,omitempty"`
	Version   string            `json:"version" yaml:"version"`
	Status    string            `json:"status" yaml:"status"`
	CreatedAt time.Time         `json:"created_at" yaml:"created_at"`
}

// Args returns the parsed-arguments view of the invocation.
func (i *Invocation) Args() ParsedArgs {
	return ParsedArgs{Cmd: i.Cmd, Flags: i.Flags}
}
