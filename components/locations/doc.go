// Package locations provides the service-area place list, search helpers,
// and a small net/http handler that returns JSON suggestions for the pickup
// and drop-off inputs.
//
// The default handler responds to GET and HEAD requests and supports query
// and limit parameters to filter results. The backing data is loaded from
// the embedded list under data/service_area.txt.
package locations
