// Package sipnavclient provides the primary entry point for constructing a
// SIPNAV API client that implements the sipnav.Client interface.
//
// It layers configuration, HTTP transport, and authentication on top of the
// resource interfaces and types defined in the sipnav package. Most
// applications should import sipnavclient to build a client, then use the
// returned sipnav.Client to access resource-specific clients, for example
// Accounts(), Carriers(), CDR(), etc.
//
// Quick start
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
//
//	  // With an API key you already have:
//	  cli, err := sipnavclient.NewWithAPIKey("https://api.bluedragonnetwork.com", "sk-...")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with username/password. The login happens lazily before the
//	  // first request, never at construction.
//	  cli, err = sipnavclient.New(&sipnav.Config{
//	    Username:   "admin@example.com",
//	    Password:   "secret",
//	    PlatformID: 3,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  defer cli.Close()
//
//	  accounts, err := cli.Accounts().List(ctx, &sipnav.ListOptions{PerPage: 50})
//	  if err != nil { log.Fatal(err) }
//	  _ = accounts
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewWithAPIKey and
// NewWithPassword that wrap New with the appropriate configuration.
package sipnavclient
