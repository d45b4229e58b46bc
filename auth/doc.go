// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session identifiers and tokens.

# Session IDs

Sessions are identified by random v4 UUIDs:

	id := auth.NewSessionID()
	id, err := auth.ParseSessionID(r.PathValue("id"))

ParseSessionID rejects anything that is not a UUID before it reaches the
database.

# Session Tokens

Session tokens use HMAC-SHA256 over the session ID:

	token := auth.GenerateSessionToken(id, salt)
	err := auth.ValidateSessionToken(id, token, salt)

The token is URL-safe base64 without padding. Since it is deterministic,
validation needs no database lookup and tokens are never stored.

# Client Hashing

For privacy-preserving visitor grouping:

	hash := auth.HashClient(ipAddress, salt)

Returns the first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
