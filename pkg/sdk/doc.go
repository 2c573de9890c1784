// Package dishq provides a Go client for the dishq translation service.
//
// The client carries an optional advisory rate limiter mirroring the
// server-side quota. It is an optimisation, not a guarantee: it skips
// round-trips that would be rejected anyway, while the server remains the
// system of record.
//
//	client := dishq.New("http://localhost:8080",
//	    dishq.WithAdvisoryLimit(10, time.Hour),
//	)
//	res, err := client.Translate(ctx, "vegan pasta under 20 minutes")
//	if err != nil {
//	    // errors.Is(err, dishq.ErrRateLimited) etc.
//	}
//	fmt.Println(res.Response) // ?query=pasta&diet=vegan&maxReadyTime=20
package dishq
