/*
Package server implements msgpack IPC for completion cycling services.

The server package provides a minimal interface for cycling word completions
over msgpack serialization on stdin/stdout.

The protocol uses binary msgpack encoding and supports cycle requests,
session management ops, and config updates. Messages are processed
synchronously, one at a time, with timing info included in responses.

# IPC

The server operates on a request response model where hosts send structured
messages via stdin and receive responses through stdout. Each message
contains an ID field, an op field, and other fields based on the operation
type.

Cycle requests carry the host buffer and the cursor:

	{"id": "req_001", "op": "cycle_forward", "t": "foobar foo fo", "cur": 13}

The server replies with the replacement the host should apply as a single
undo action:

	{"id": "req_001", "status": "ok", "rs": 11, "re": 13, "t": "foobar", "cur": 17, "n": 3, "us": 213}

When nothing matches the typed prefix the reply carries the status bar
message instead, and when the cursor does not touch a word the step is a
silent no-op:

	{"id": "req_002", "status": "no_match", "m": "No completions found for \"fo\"."}
	{"id": "req_003", "status": "no_prefix"}

Session management uses the reset op when the host switches documents, since
candidates never carry over between buffers. Config updates adjust the
active settings without a restart and persist them to the TOML file:

	{"id": "cfg_001", "op": "config", "cl": 24, "sf": true}

Response structures include status information and error details when an op
fails. Undecodable frames and unknown ops answer with code 400.

The words op lists the vocabulary of the last seen buffer for debugging and
host-side inspection.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON and
the buffer travels with every cycle request, so the savings land on the hot
path.

# Message Types

Request is the single envelope for every operation; unused fields stay
empty on the wire. CycleResponse answers the two cycle ops with the replace
span, the inserted text, and the new cursor. ConfigResponse echoes the
active settings after config and get_config. WordsResponse carries the
vocabulary listing, and RequestError reports failures with a basic code.
*/
package server

// Request - single envelope for all client operations
type Request struct {
	ID        string `msgpack:"id"`
	Op        string `msgpack:"op"`
	Text      string `msgpack:"t,omitempty"`
	Cursor    int    `msgpack:"cur,omitempty"`
	WordChars string `msgpack:"wc,omitempty"` // extra word characters, e.g. "-"
	Prefix    string `msgpack:"p,omitempty"`  // for "words"
	Limit     int    `msgpack:"l,omitempty"`  // for "words"

	// config fields, nil means keep the current value
	SortOrder              *int  `msgpack:"so,omitempty"`
	CandidatesLimit        *int  `msgpack:"cl,omitempty"`
	DistanceLimitKB        *int  `msgpack:"dl,omitempty"`
	SkipFuzzyIfExact       *bool `msgpack:"sf,omitempty"`
	RemoveTrailingWordPart *bool `msgpack:"rt,omitempty"`
}

// CycleResponse - one completion step result
type CycleResponse struct {
	ID           string `msgpack:"id"`
	Status       string `msgpack:"status"` // "ok", "no_match", "no_prefix"
	ReplaceStart int    `msgpack:"rs,omitempty"`
	ReplaceEnd   int    `msgpack:"re,omitempty"`
	Text         string `msgpack:"t,omitempty"`
	Cursor       int    `msgpack:"cur,omitempty"`
	Count        int    `msgpack:"n,omitempty"`
	Message      string `msgpack:"m,omitempty"` // status bar text on "no_match"
	TimeTaken    int64  `msgpack:"us"`
}

// ConfigResponse - active settings after "config" and "get_config"
type ConfigResponse struct {
	ID                     string `msgpack:"id"`
	Status                 string `msgpack:"status"`
	SortOrder              int    `msgpack:"so"`
	CandidatesLimit        int    `msgpack:"cl"`
	DistanceLimitKB        int    `msgpack:"dl"`
	SkipFuzzyIfExact       bool   `msgpack:"sf"`
	RemoveTrailingWordPart bool   `msgpack:"rt"`
}

// WordEntry - one vocabulary word with its occurrence count
type WordEntry struct {
	Word  string `msgpack:"w"`
	Count int    `msgpack:"n"`
}

// WordsResponse - vocabulary listing response
type WordsResponse struct {
	ID     string      `msgpack:"id"`
	Status string      `msgpack:"status"`
	Words  []WordEntry `msgpack:"words"`
	Count  int         `msgpack:"c"`
}

// StatusResponse - plain status frame ("ready", reset and health acks)
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// RequestError holds basic error information for failed requests
type RequestError struct {
	ID    string `msgpack:"id,omitempty"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
