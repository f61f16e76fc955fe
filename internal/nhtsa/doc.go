// Package nhtsa decodes Vehicle Identification Numbers with the NHTSA vPIC API.
//
// # Overview
//
// A Query owns one VIN. It builds the request URL once at construction,
// fetches the decodevin endpoint through a Fetcher, validates the JSON
// envelope and maps the first result record into a VehicleInfo:
//
//	q := nhtsa.NewQuery("1M8GDM9AXKP042788", nhtsa.NewHTTPFetcher(nhtsa.HTTPOptions{}))
//	info, ok := q.Get(ctx)
//	if !ok {
//		log.Printf("decode failed (%s, code %d): %s", q.Kind(), q.ErrorCode(), q.Error())
//		return
//	}
//	fmt.Println(info.Year, info.Make, info.Model, info.Type)
//
// # Files
//
//   - query.go: Query construction, Get orchestration and diagnostics
//   - types.go: Envelope, ResultRecord and VehicleInfo
//   - errorcode.go: the "<digits>- <text>" ErrorCode micro-format
//   - vehicletype.go: body class / vehicle type classification
//   - fetch.go: Fetcher capability and the net/http implementation
//
// # Failure Modes
//
// Get never returns an error. Every failure leaves Valid() false, Get's
// second result false, and a classified ErrorKind:
//
//   - KindTransport: network fault or timeout; Error() is the fault message
//   - KindHTTPStatus: 4xx/5xx; Error() is the status reason phrase
//   - KindMalformed: body is not JSON; Error() is "Response is not valid JSON"
//   - KindNoResults: JSON without result records
//   - KindAPI: the first record's ErrorCode is non-zero or missing;
//     ErrorCode() carries the parsed integer
//
// The API sometimes reports its own database timeouts inside a 200 response
// ("Connection Timeout Expired"). Those are KindAPI failures and additionally
// set UpstreamTimeout().
//
// # Vehicle Type
//
// VehicleInfo.Type is derived by VehicleType, not copied from the record:
//
//   - TRUCK with a body class containing "Van" -> "Van"
//   - TRUCK otherwise -> "Truck"
//   - MULTIPURPOSE PASSENGER VEHICLE (MPV) with an SUV body class -> "SUV"
//   - anything else is returned unchanged
//
// # Transport
//
// HTTPFetcher sets Accept and User-Agent headers, bounds each request with the
// configured http.Client timeout and instruments the transport with
// OpenTelemetry. Timeouts wrap ErrTimeout. Tests substitute a FetcherFunc.
//
// # Thread Safety
//
// HTTPFetcher is safe for concurrent use. A Query is not: each goroutine
// should own its Query. Nothing is cached and nothing is retried.
package nhtsa
