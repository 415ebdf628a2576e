/*
Package authsdk provides a client SDK for interacting with the PilotBA authentication service.

# Overview

The authsdk package implements a client for the PilotBA auth service. It provides
both unauthenticated operations (via SDKClient) and authenticated operations
(via Session) with automatic token refresh.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: Provides unauthenticated operations and creates authenticated sessions
  - Session: Provides authenticated operations with automatic token refresh

Create an SDKClient to interact with public endpoints and initiate authentication:

	client := authsdk.NewSDKClient("https://auth.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Create an account; registration doubles as the first login
	session, err := client.Register(ctx, "pilot@example.com", "Pilot", "Sup3rSecret")

	// Or authenticate an existing account
	session, err := client.Login(ctx, "pilot@example.com", "Sup3rSecret")

Use a Session for authenticated operations. Sessions automatically handle token
expiration and refresh:

	// Get the caller's profile
	me, err := session.Me(ctx)

	// See everything the caller may do
	perms, err := session.MyPermissions(ctx)

	// Work with teams
	team, err := session.CreateTeam(ctx, "Flight Ops", "ops dashboards")
	member, err := session.AddMember(ctx, team.ID, "copilot@example.com", "member")

# Automatic Token Refresh

Sessions automatically refresh access tokens when they expire. All Session methods
call getValidToken() internally, which:

 1. Checks if the access token is still valid (with 30-second buffer)
 2. If expired, rotates the refresh token for a new pair
 3. Updates the session with the new tokens

Refresh tokens are single use: each rotation revokes the presented token and
hands back a fresh one, which the session stores in its place. You never need
to manually refresh tokens when using Session methods.

# Error Handling

Every non-2xx response comes back as an *APIError carrying the HTTP status and
the code and message from the error body. Helpers cover the common branches:

	_, err := session.GetTeam(ctx, teamID)
	switch {
	case authsdk.IsUnauthorized(err):
		// Token invalid or expired beyond refresh; log in again
	case authsdk.IsForbidden(err):
		// Authenticated but not allowed
	case authsdk.IsRetryable(err):
		// Rate limited or the backing store is briefly down; back off and retry
	}

Note that the server rejects all bad credentials identically: an expired token,
a forged token and a revoked token produce the same 401. The SDK cannot tell
you which it was, because the server deliberately does not say.

# Thread Safety

Sessions are safe for concurrent use. All Session methods use read/write locks
to protect access to tokens. Multiple goroutines can share a single Session and
make authenticated requests concurrently.

# Examples

Complete authentication and API usage:

	// Create client
	client := authsdk.NewSDKClient("https://auth.example.com")

	// Authenticate
	session, err := client.Login(context.Background(), "pilot@example.com", "Sup3rSecret")
	if err != nil {
		log.Fatal(err)
	}

	// Use authenticated session
	me, err := session.Me(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Logged in as: %s\n", me.Name)

	// Session automatically refreshes tokens when needed
	teams, err := session.ListTeams(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	// Log out when done
	err = session.Logout(context.Background())
*/
package authsdk
