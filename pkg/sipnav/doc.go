// Package sipnav provides types, interfaces, and helpers for working with
// the SIPNAV telecom back-office REST API.
//
// # Overview
//
// The sipnav package defines the domain types (Account, Carrier, Company,
// CDRRecord, CallRestriction, LRNResult, RateDeck) and the interfaces for the
// resource-oriented clients (AccountsClient, CarriersClient, and so on). A
// concrete implementation of these clients is provided by the sipnavclient
// package, which wires configuration, transport, authentication, and the
// optional response cache. Most consumers should import sipnavclient to
// construct a client and then interact with the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/bluedragon-network/sipnav-go/pkg/sipnav"
//	  "github.com/bluedragon-network/sipnav-go/pkg/sipnavclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := sipnavclient.NewWithAPIKey("sk-your-key")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  accounts, err := cli.Accounts().List(ctx, &sipnav.ListOptions{PerPage: 100})
//	  if err != nil { log.Fatal(err) }
//	  _ = accounts
//	}
//
// # Errors
//
// Every failure is reported as a *sipnav.Error carrying the classification
// Kind, the HTTP status where applicable, and the method and path of the
// originating request. Use the predicates to branch:
//
//	_, err := cli.Accounts().Get(ctx, 99999, nil)
//	switch {
//	case sipnav.IsAuthenticationError(err):
//	  // token expired or invalid — re-authenticate
//	case sipnav.IsAPIError(err):
//	  // terminal API failure; err.Error() includes message, details, request
//	case sipnav.IsConnectionError(err), sipnav.IsTimeout(err):
//	  // transport problem that survived the retry budget
//	}
//
// # Caching
//
// LRN dips can be served from a response cache. Configure it with
// Config.Cache; backends are in-memory and NATS JetStream KV, optionally
// layered with NewCacheChain.
package sipnav
