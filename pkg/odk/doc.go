// Package odk provides types, interfaces, and helpers for working with the
// ODK Central REST API.
//
// # Overview
//
// The odk package defines the domain types (Form, Dataset, Entity, submission
// and entity OData envelopes) and the interfaces for resource-oriented clients
// (FormsClient, SubmissionsClient, DatasetsClient, EntitiesClient). A concrete
// implementation of these clients is provided by the odkclient package, which
// wires configuration, transport, and session authentication. Most consumers
// should import odkclient to construct a client and then interact with the
// resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/sahana-9314/odk-central-client/pkg/odk"
//	  "github.com/sahana-9314/odk-central-client/pkg/odkclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := odkclient.New(ctx, &odk.Config{
//	    Endpoint: "https://central.example.org",
//	    Email:    "admin@example.org",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close(ctx)
//
//	  forms, err := cli.Forms().List(ctx, 1, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = forms
//	}
//
// # Queries
//
// Use QueryParams to express the OData query options accepted by Central's
// .svc endpoints ($top, $skip, $count, $filter, $select, $orderby).
//
// # Errors
//
// API errors are represented by APIError, carrying the HTTP status along with
// Central's error code and message. Helpers such as IsNotFound, IsUnauthorized,
// and IsConflict make it easy to branch on common cases; IsConflict in
// particular signals a rejected optimistic-concurrency entity update.
//
// # Bulk operations
//
// SubmissionsClient.ListAll and EntitiesClient.CreateMany fan requests out
// across a bounded worker pool. Individual failures are logged through the
// configured Logger and skipped; the aggregate never fails because one item
// did.
package odk
